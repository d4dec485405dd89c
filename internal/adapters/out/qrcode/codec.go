// Package qrcode renders proof envelopes as PNG QR codes and reads them back
// from uploaded photos or scans.
package qrcode

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	goqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length of encoded images, in pixels.
const DefaultSize = 512

// Codec implements ports.ProofCodec. It is stateless and safe for concurrent use.
type Codec struct {
	size int
}

// NewCodec returns a codec producing size x size images. Non-positive sizes
// fall back to DefaultSize.
func NewCodec(size int) *Codec {
	if size <= 0 {
		size = DefaultSize
	}
	return &Codec{size: size}
}

// Encode renders content at medium error correction.
func (c *Codec) Encode(content []byte) ([]byte, error) {
	png, err := goqrcode.Encode(string(content), goqrcode.Medium, c.size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}
	return png, nil
}

// Decode returns the text of the QR code found in the image. Images that
// decode but contain no readable code yield an empty slice.
func (c *Codec) Decode(ctx context.Context, r io.Reader) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("qrcode: read image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("qrcode: binarize: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := zxingqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		// not found, checksum and format failures all mean no usable code
		return [][]byte{}, nil
	}

	return [][]byte{[]byte(result.GetText())}, nil
}

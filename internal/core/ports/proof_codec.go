package ports

import (
	"context"
	"io"
)

// ProofCodec turns proof envelopes into printable QR images and back.
type ProofCodec interface {
	// Encode renders content as a PNG QR code.
	Encode(content []byte) ([]byte, error)

	// Decode reads every QR code found in the image. An image without codes
	// yields an empty slice; unreadable bytes yield an error.
	Decode(ctx context.Context, image io.Reader) ([][]byte, error)
}

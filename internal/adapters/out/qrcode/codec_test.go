package qrcode_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"campusdelivery/internal/adapters/out/qrcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := qrcode.NewCodec(0)
	content := []byte(`{"payload":"eyJvcmRlcl9pZCI6IngifQ==","signature":"` + strings.Repeat("ab", 32) + `"}`)

	img, err := codec.Encode(content)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")), "encodes PNG")

	got, err := codec.Decode(t.Context(), bytes.NewReader(img))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, content, got[0])
}

func TestCodec_BlankImageHasNoCode(t *testing.T) {
	blank := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range blank.Pix {
		blank.Pix[i] = uint8(color.White.Y)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, blank))

	got, err := qrcode.NewCodec(0).Decode(t.Context(), &buf)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCodec_UnreadableBytes(t *testing.T) {
	_, err := qrcode.NewCodec(0).Decode(t.Context(), strings.NewReader("definitely not an image"))

	require.Error(t, err)
}

func TestCodec_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := qrcode.NewCodec(0).Decode(ctx, strings.NewReader(""))

	require.ErrorIs(t, err, context.Canceled)
}

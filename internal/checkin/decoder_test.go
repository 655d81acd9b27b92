package checkin

import (
	"testing"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQR_RoundTrip(t *testing.T) {
	// encode with the same library the ticket renderer uses
	png, err := qrcode.Encode("42", qrcode.Medium, 256)
	require.NoError(t, err)

	payload, err := DecodeQR(png)
	require.NoError(t, err)
	assert.Equal(t, "42", payload)

	id, err := ParsePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestDecodeQR_RejectsNonImages(t *testing.T) {
	_, err := DecodeQR([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestDecodeQR_RejectsTruncatedImage(t *testing.T) {
	png, err := qrcode.Encode("x", qrcode.Low, 64)
	require.NoError(t, err)

	_, err = DecodeQR(png[:20])
	assert.Error(t, err)
}

// Package checkin handles admin QR check-in: decoding a scanned ticket and
// driving the single status update the scan is allowed to make.
package checkin

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Telegram photos arrive as JPEG
	_ "image/png"
	"strconv"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// DecodeQR extracts the QR payload from a photo. The heavy lifting is the
// zxing port; this just bridges image bytes in and text out.
func DecodeQR(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("checkin: decode image: %w", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("checkin: prepare bitmap: %w", err)
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("checkin: no qr code found: %w", err)
	}
	return result.GetText(), nil
}

// ParsePayload validates a scanned payload. Tickets carry the bare
// appointment id; anything else is rejected before any backend call.
func ParsePayload(payload string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("checkin: payload is not an appointment id: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("checkin: appointment id must be positive, got %d", id)
	}
	return id, nil
}

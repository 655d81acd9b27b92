package ticket

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/clinic_bot/internal/checkin"
	"github.com/campuscare/clinic_bot/internal/model"
)

func sample() Data {
	return Data{
		AppointmentID: 73,
		StudentName:   "Alice Johnson",
		ServiceType:   "Medical Clearance",
		Date:          "2026-09-01",
		Time:          "10:30",
		Urgency:       "Urgent",
		Status:        model.AppointmentStatusApproved,
	}
}

func TestRender_ProducesTicketPNG(t *testing.T) {
	data, err := Render(sample())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, ticketWidth, bounds.Dx())
	assert.Equal(t, ticketHeight, bounds.Dy())
}

func TestRender_QRCarriesAppointmentID(t *testing.T) {
	data, err := Render(sample())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// crop the QR region and run it through the scanner's own decoder
	qrRect := image.Rect((ticketWidth-qrSize)/2, int(qrTop), (ticketWidth+qrSize)/2, int(qrTop)+qrSize)
	cropped, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	require.True(t, ok, "png should decode to a croppable image")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, cropped.SubImage(qrRect)))

	payload, err := checkin.DecodeQR(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "73", payload)

	id, err := checkin.ParsePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(73), id)
}

func TestRender_UnknownStatusStillRenders(t *testing.T) {
	d := sample()
	d.Status = "archived"

	data, err := Render(d)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestUrgencyLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Urgent", "High"},
		{"high", "High"},
		{"Normal", "Low"},
		{"low", "Low"},
		{"", "Low"},
		{"whenever", "Low"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, urgencyLabel(tt.in), "urgency %q", tt.in)
	}
}

// Package ticket renders the check-in ticket a student presents at the
// clinic desk: the appointment facts plus a QR code holding the appointment
// id, which is exactly what the admin scanner expects back.
package ticket

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font/inconsolata"

	"github.com/campuscare/clinic_bot/internal/model"
)

const (
	ticketWidth  = 640
	ticketHeight = 920
	headerHeight = 120
	marginX      = 48.0
	fieldGap     = 66.0
	qrSize       = 320
	qrTop        = 520.0
)

var (
	cardColor    = color.RGBA{255, 255, 255, 255}
	headerColor  = color.RGBA{47, 111, 237, 255}
	headerText   = color.RGBA{255, 255, 255, 255}
	labelColor   = color.RGBA{130, 136, 148, 255}
	valueColor   = color.RGBA{28, 32, 38, 255}
	footerColor  = color.RGBA{130, 136, 148, 255}
	dividerColor = color.RGBA{225, 228, 234, 255}

	statusColors = map[model.AppointmentStatus]color.RGBA{
		model.AppointmentStatusPending:   {240, 173, 78, 255},
		model.AppointmentStatusApproved:  {92, 184, 92, 255},
		model.AppointmentStatusRejected:  {217, 83, 79, 255},
		model.AppointmentStatusCanceled:  {158, 158, 158, 255},
		model.AppointmentStatusCompleted: {91, 192, 222, 255},
	}
	statusDefaultColor = color.RGBA{158, 158, 158, 255}
)

// Data is what gets printed on a ticket.
type Data struct {
	AppointmentID int64
	StudentName   string
	ServiceType   string
	Date          string
	Time          string
	Urgency       string
	Status        model.AppointmentStatus
}

// Render draws the ticket and returns it as PNG bytes.
func Render(d Data) ([]byte, error) {
	qr, err := qrcode.New(strconv.FormatInt(d.AppointmentID, 10), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("ticket: build qr code: %w", err)
	}

	dc := createCanvas()
	drawHeader(dc)
	drawFields(dc, d)
	drawQR(dc, qr)
	drawFooter(dc, d)

	return encodeImage(dc)
}

func createCanvas() *gg.Context {
	dc := gg.NewContext(ticketWidth, ticketHeight)
	dc.SetColor(cardColor)
	dc.Clear()
	return dc
}

func drawHeader(dc *gg.Context) {
	dc.SetColor(headerColor)
	dc.DrawRectangle(0, 0, ticketWidth, headerHeight)
	dc.Fill()

	dc.SetFontFace(inconsolata.Bold8x16)
	dc.SetColor(headerText)
	dc.DrawStringAnchored("CAMPUSCARE CLINIC", ticketWidth/2, headerHeight/2-12, 0.5, 0.5)
	dc.SetFontFace(inconsolata.Regular8x16)
	dc.DrawStringAnchored("Check-in Ticket", ticketWidth/2, headerHeight/2+14, 0.5, 0.5)
}

func drawFields(dc *gg.Context, d Data) {
	fields := []struct {
		label string
		value string
	}{
		{"TICKET NO", fmt.Sprintf("#%d", d.AppointmentID)},
		{"STUDENT", d.StudentName},
		{"SERVICE", d.ServiceType},
		{"DATE / TIME", d.Date + "  " + d.Time},
		{"URGENCY", urgencyLabel(d.Urgency)},
	}

	y := float64(headerHeight) + 56
	for _, f := range fields {
		dc.SetFontFace(inconsolata.Regular8x16)
		dc.SetColor(labelColor)
		dc.DrawString(f.label, marginX, y)

		dc.SetFontFace(inconsolata.Bold8x16)
		dc.SetColor(valueColor)
		dc.DrawString(truncate(f.value, 52), marginX, y+24)

		dc.SetColor(dividerColor)
		dc.SetLineWidth(1)
		dc.DrawLine(marginX, y+38, ticketWidth-marginX, y+38)
		dc.Stroke()

		y += fieldGap
	}

	// status pill after the field block
	pillColor, ok := statusColors[d.Status]
	if !ok {
		pillColor = statusDefaultColor
	}
	label := strings.ToUpper(string(d.Status))
	pillW := float64(len(label)*8) + 36
	dc.SetColor(pillColor)
	dc.DrawRoundedRectangle(marginX, y-10, pillW, 30, 15)
	dc.Fill()
	dc.SetFontFace(inconsolata.Bold8x16)
	dc.SetColor(headerText)
	dc.DrawStringAnchored(label, marginX+pillW/2, y+5, 0.5, 0.5)
}

func drawQR(dc *gg.Context, qr *qrcode.QRCode) {
	img := qr.Image(qrSize)
	x := (ticketWidth - qrSize) / 2
	dc.DrawImage(img, x, int(qrTop))
}

func drawFooter(dc *gg.Context, d Data) {
	dc.SetFontFace(inconsolata.Regular8x16)
	dc.SetColor(footerColor)
	dc.DrawStringAnchored("Show this code at the clinic desk",
		ticketWidth/2, qrTop+qrSize+36, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("Appointment ID %d", d.AppointmentID),
		ticketWidth/2, qrTop+qrSize+58, 0.5, 0.5)
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("ticket: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func urgencyLabel(urgency string) string {
	switch strings.ToLower(strings.TrimSpace(urgency)) {
	case "urgent", "high":
		return "High"
	}
	return "Low"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

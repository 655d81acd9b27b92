package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/campuscare/clinic_bot/internal/model"
)

// AppointmentLine renders the one-line list entry used by both dashboards.
func AppointmentLine(a model.Appointment, withStudent bool) string {
	display := GetStatusDisplay(a.Status)
	urgency := GetUrgencyDisplay(a)

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>#%d</b> %s", display.Emoji, a.ID, html.EscapeString(a.ServiceType))
	if withStudent && a.StudentName != "" {
		fmt.Fprintf(&b, " — %s", html.EscapeString(a.StudentName))
	}
	fmt.Fprintf(&b, "\n      %s, %s %s",
		FormatDateTimeHuman(a.AppointmentDate, a.AppointmentTime),
		urgency.Emoji, urgency.Text)
	return b.String()
}

// AppointmentDetail renders the full record for the detail screen. Admin
// screens also show who booked it.
func AppointmentDetail(a model.Appointment, withStudent bool) string {
	display := GetStatusDisplay(a.Status)
	urgency := GetUrgencyDisplay(a)
	mode := GetModeDisplay(a.BookingMode)

	var b strings.Builder
	fmt.Fprintf(&b, "🏥 <b>Appointment #%d</b>\n\n", a.ID)
	if withStudent {
		fmt.Fprintf(&b, "👤 Student: %s\n", html.EscapeString(a.StudentName))
		if a.StudentEmail != "" {
			fmt.Fprintf(&b, "✉️ Email: %s\n", html.EscapeString(a.StudentEmail))
		}
	}
	fmt.Fprintf(&b, "🩺 Service: %s\n", html.EscapeString(a.ServiceType))
	fmt.Fprintf(&b, "📅 When: %s\n", FormatDateTimeHuman(a.AppointmentDate, a.AppointmentTime))
	fmt.Fprintf(&b, "%s Urgency: %s\n", urgency.Emoji, urgency.Text)
	fmt.Fprintf(&b, "%s Booked via: %s\n", mode.Emoji, mode.Text)
	fmt.Fprintf(&b, "%s Status: %s\n", display.Emoji, display.Text)
	if a.Reason != "" {
		fmt.Fprintf(&b, "\n📝 Reason:\n%s\n", html.EscapeString(a.Reason))
	}
	if a.AdminNote != "" {
		fmt.Fprintf(&b, "\n💬 Clinic note:\n%s\n", html.EscapeString(a.AdminNote))
	}
	if a.CreatedAt != "" {
		fmt.Fprintf(&b, "\n🕓 Booked: %s", FormatTimestamp(a.CreatedAt))
	}
	return b.String()
}

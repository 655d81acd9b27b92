package formatting

import (
	"strings"

	"github.com/campuscare/clinic_bot/internal/model"
)

// StatusDisplay pairs the emoji and label used for an appointment status
// everywhere it is shown.
type StatusDisplay struct {
	Emoji string
	Text  string
}

var statusDisplays = map[model.AppointmentStatus]StatusDisplay{
	model.AppointmentStatusPending:   {"⏳", "Pending"},
	model.AppointmentStatusApproved:  {"✅", "Approved"},
	model.AppointmentStatusRejected:  {"🚫", "Rejected"},
	model.AppointmentStatusCanceled:  {"❌", "Canceled"},
	model.AppointmentStatusCompleted: {"✔️", "Completed"},
}

// GetStatusDisplay returns the emoji and label for a status. Values the bot
// does not know are shown as-is rather than hidden.
func GetStatusDisplay(status model.AppointmentStatus) StatusDisplay {
	if display, ok := statusDisplays[status]; ok {
		return display
	}
	return StatusDisplay{"❓", titleCase(string(status))}
}

// GetUrgencyDisplay returns the badge for an appointment's urgency tier.
func GetUrgencyDisplay(a model.Appointment) StatusDisplay {
	if a.UrgencyHigh() {
		return StatusDisplay{"🔴", "High"}
	}
	return StatusDisplay{"🟢", "Low"}
}

// GetModeDisplay returns the badge for how an appointment was booked.
func GetModeDisplay(mode model.BookingMode) StatusDisplay {
	if mode == model.BookingModeChatbot {
		return StatusDisplay{"🤖", "AI assistant"}
	}
	return StatusDisplay{"📝", "Standard"}
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package formatting

import (
	"testing"

	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestGetStatusDisplay(t *testing.T) {
	assert.Equal(t, StatusDisplay{"⏳", "Pending"}, GetStatusDisplay(model.AppointmentStatusPending))
	assert.Equal(t, StatusDisplay{"✅", "Approved"}, GetStatusDisplay(model.AppointmentStatusApproved))
	assert.Equal(t, StatusDisplay{"🚫", "Rejected"}, GetStatusDisplay(model.AppointmentStatusRejected))
	assert.Equal(t, StatusDisplay{"❌", "Canceled"}, GetStatusDisplay(model.AppointmentStatusCanceled))
	assert.Equal(t, StatusDisplay{"✔️", "Completed"}, GetStatusDisplay(model.AppointmentStatusCompleted))

	// unknown statuses stay visible instead of disappearing
	assert.Equal(t, StatusDisplay{"❓", "Archived"}, GetStatusDisplay(model.AppointmentStatus("archived")))
	assert.Equal(t, StatusDisplay{"❓", "Unknown"}, GetStatusDisplay(model.AppointmentStatus("")))
}

func TestGetUrgencyDisplay(t *testing.T) {
	high := model.Appointment{Urgency: "Urgent"}
	assert.Equal(t, StatusDisplay{"🔴", "High"}, GetUrgencyDisplay(high))

	normal := model.Appointment{Urgency: "Normal"}
	assert.Equal(t, StatusDisplay{"🟢", "Low"}, GetUrgencyDisplay(normal))

	// display treats unknown tiers as the calm one
	odd := model.Appointment{Urgency: "whenever"}
	assert.Equal(t, StatusDisplay{"🟢", "Low"}, GetUrgencyDisplay(odd))
}

func TestGetModeDisplay(t *testing.T) {
	assert.Equal(t, StatusDisplay{"🤖", "AI assistant"}, GetModeDisplay(model.BookingModeChatbot))
	assert.Equal(t, StatusDisplay{"📝", "Standard"}, GetModeDisplay(model.BookingModeStandard))
	assert.Equal(t, StatusDisplay{"📝", "Standard"}, GetModeDisplay(model.BookingMode("")))
}

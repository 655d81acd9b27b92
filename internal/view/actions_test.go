package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuscare/clinic_bot/internal/model"
)

var allStatuses = []model.AppointmentStatus{
	model.AppointmentStatusPending,
	model.AppointmentStatusApproved,
	model.AppointmentStatusRejected,
	model.AppointmentStatusCanceled,
	model.AppointmentStatusCompleted,
}

func TestActionTablesAreTotal(t *testing.T) {
	for _, status := range allStatuses {
		assert.NotEmpty(t, AdminActions(status), "admin actions for %s", status)
		assert.NotEmpty(t, StudentActions(status), "student actions for %s", status)
	}
}

func TestAdminActionsPerStatus(t *testing.T) {
	assert.Equal(t,
		[]Action{ActionApprove, ActionReject, ActionView, ActionDelete},
		AdminActions(model.AppointmentStatusPending))

	for _, status := range allStatuses[1:] {
		assert.Equal(t, []Action{ActionView, ActionDelete}, AdminActions(status),
			"admin actions for %s", status)
	}
}

func TestStudentActionsPerStatus(t *testing.T) {
	assert.Equal(t, []Action{ActionCancel}, StudentActions(model.AppointmentStatusPending))
	assert.Equal(t, []Action{ActionTicket, ActionCancel}, StudentActions(model.AppointmentStatusApproved))

	for _, status := range []model.AppointmentStatus{
		model.AppointmentStatusRejected,
		model.AppointmentStatusCanceled,
		model.AppointmentStatusCompleted,
	} {
		assert.Equal(t, []Action{ActionRemove}, StudentActions(status),
			"student actions for %s", status)
	}
}

func TestUnknownStatusFallsBack(t *testing.T) {
	assert.Equal(t, []Action{ActionView, ActionDelete}, AdminActions("archived"))
	assert.Equal(t, []Action{ActionRemove}, StudentActions("archived"))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to model.AppointmentStatus
		want     bool
	}{
		{model.AppointmentStatusPending, model.AppointmentStatusApproved, true},
		{model.AppointmentStatusPending, model.AppointmentStatusRejected, true},
		{model.AppointmentStatusPending, model.AppointmentStatusCanceled, true},
		{model.AppointmentStatusPending, model.AppointmentStatusCompleted, false},
		{model.AppointmentStatusApproved, model.AppointmentStatusCompleted, true},
		{model.AppointmentStatusApproved, model.AppointmentStatusCanceled, true},
		{model.AppointmentStatusApproved, model.AppointmentStatusRejected, false},
		{model.AppointmentStatusCompleted, model.AppointmentStatusApproved, false},
		{model.AppointmentStatusRejected, model.AppointmentStatusPending, false},
		{model.AppointmentStatusCanceled, model.AppointmentStatusApproved, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	for _, terminal := range []model.AppointmentStatus{
		model.AppointmentStatusRejected,
		model.AppointmentStatusCanceled,
		model.AppointmentStatusCompleted,
	} {
		for _, to := range allStatuses {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestCollect(t *testing.T) {
	stats := Collect([]model.Appointment{
		{Status: model.AppointmentStatusPending},
		{Status: model.AppointmentStatusPending},
		{Status: model.AppointmentStatusApproved},
		{Status: model.AppointmentStatusCompleted},
		{Status: "archived"},
	})

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 0, stats.Rejected)
	assert.Equal(t, 0, stats.Canceled)
}

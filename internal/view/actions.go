package view

import "github.com/campuscare/clinic_bot/internal/model"

// Action is one button a dashboard offers for an appointment. What an action
// does lives in the callback layer; which actions appear is decided here, in
// one place, for both surfaces.
type Action string

const (
	ActionApprove Action = "approve" // admin: request status=approved
	ActionReject  Action = "reject"  // admin: note dialog, then status=rejected
	ActionView    Action = "view"    // admin: full record detail
	ActionDelete  Action = "delete"  // admin: hard delete
	ActionCancel  Action = "cancel"  // student: withdraw the appointment
	ActionTicket  Action = "ticket"  // student: download the check-in ticket
	ActionRemove  Action = "remove"  // student: delete a finished entry from history
)

var adminActions = map[model.AppointmentStatus][]Action{
	model.AppointmentStatusPending:   {ActionApprove, ActionReject, ActionView, ActionDelete},
	model.AppointmentStatusApproved:  {ActionView, ActionDelete},
	model.AppointmentStatusCompleted: {ActionView, ActionDelete},
	model.AppointmentStatusRejected:  {ActionView, ActionDelete},
	model.AppointmentStatusCanceled:  {ActionView, ActionDelete},
}

var studentActions = map[model.AppointmentStatus][]Action{
	model.AppointmentStatusPending:   {ActionCancel},
	model.AppointmentStatusApproved:  {ActionTicket, ActionCancel},
	model.AppointmentStatusCompleted: {ActionRemove},
	model.AppointmentStatusRejected:  {ActionRemove},
	model.AppointmentStatusCanceled:  {ActionRemove},
}

// AdminActions returns the admin buttons for a status. Unrecognized statuses
// fall back to view/delete so a bad backend value still renders something
// workable.
func AdminActions(s model.AppointmentStatus) []Action {
	if actions, ok := adminActions[s]; ok {
		return actions
	}
	return []Action{ActionView, ActionDelete}
}

// StudentActions returns the student buttons for a status. Unrecognized
// statuses are treated as finished history.
func StudentActions(s model.AppointmentStatus) []Action {
	if actions, ok := studentActions[s]; ok {
		return actions
	}
	return []Action{ActionRemove}
}

// allowedTransitions is what the client may request. pending can be decided
// or withdrawn; approved can complete (scanner only) or be withdrawn; the
// rest are terminal and change only through hard delete. The backend remains
// the authority either way.
var allowedTransitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.AppointmentStatusPending: {
		model.AppointmentStatusApproved,
		model.AppointmentStatusRejected,
		model.AppointmentStatusCanceled,
	},
	model.AppointmentStatusApproved: {
		model.AppointmentStatusCompleted,
		model.AppointmentStatusCanceled,
	},
}

// CanTransition reports whether the client should even offer a move from one
// status to another.
func CanTransition(from, to model.AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

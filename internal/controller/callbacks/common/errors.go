package common

import (
	"errors"
	"strings"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/service"
)

// Shared handler errors.
var (
	ErrNoSession           = errors.New("no active session")
	ErrNotAdmin            = errors.New("user is not clinic staff")
	ErrNotSuperAdmin       = errors.New("user is not the head administrator")
	ErrNotStudent          = errors.New("user is not a student")
	ErrNoMessage           = errors.New("no message in callback")
	ErrInvalidFormat       = errors.New("invalid callback format")
	ErrNoDashboard         = errors.New("no open dashboard")
	ErrAppointmentNotFound = errors.New("appointment not in the loaded list")
)

// ErrorMessage maps an error to what the user should see. Backend errors
// with a structured detail show that detail; anything unrecognized gets the
// generic connectivity line so raw transport noise never reaches the chat.
func ErrorMessage(err error) string {
	var apiErr *clinic.APIError

	switch {
	case errors.Is(err, ErrNoSession):
		return "🔒 Please log in first with /login"
	case errors.Is(err, ErrNotAdmin):
		return "⛔ This action is for clinic staff only"
	case errors.Is(err, ErrNotSuperAdmin):
		return "⛔ Only the head administrator can manage accounts"
	case errors.Is(err, ErrNotStudent):
		return "⛔ This action is for students only"
	case errors.Is(err, ErrNoMessage):
		return "❌ Message is no longer available"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid button data"
	case errors.Is(err, ErrNoDashboard):
		return "❌ The list is stale. Open it again with /appointments"
	case errors.Is(err, ErrAppointmentNotFound):
		return "❌ Appointment not found. Refresh the list"
	case errors.Is(err, service.ErrInvalidInput):
		return "⚠️ " + inputProblem(err)
	case clinic.IsUnauthorized(err):
		return "🔒 Your session has expired. Please /login again"
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return "⚠️ " + apiErr.Detail
		}
		return "⚠️ The clinic could not process the request"
	case err != nil:
		return "📡 Could not reach the clinic right now. Please try again"
	default:
		return "❌ Something went wrong"
	}
}

// inputProblem strips the sentinel prefix so the user sees only the friendly
// part of a validation error.
func inputProblem(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}

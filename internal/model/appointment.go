package model

import "strings"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"   // waiting for clinic review
	AppointmentStatusApproved  AppointmentStatus = "approved"  // confirmed by an admin
	AppointmentStatusRejected  AppointmentStatus = "rejected"  // declined with a note
	AppointmentStatusCanceled  AppointmentStatus = "canceled"  // withdrawn by the student
	AppointmentStatusCompleted AppointmentStatus = "completed" // checked in at the clinic
)

type BookingMode string

const (
	BookingModeStandard BookingMode = "standard"
	BookingModeChatbot  BookingMode = "ai_chatbot"
)

// Appointment mirrors the backend wire shape. Dates and times stay strings
// ("YYYY-MM-DD", "HH:MM[:SS]"); the backend owns parsing and validation.
type Appointment struct {
	ID              int64             `json:"id"`
	StudentName     string            `json:"student_name,omitempty"`  // admin listing only
	StudentEmail    string            `json:"student_email,omitempty"` // admin listing only
	ServiceType     string            `json:"service_type"`
	Urgency         string            `json:"urgency"` // normal/low or urgent/high, free text
	AppointmentDate string            `json:"appointment_date"`
	AppointmentTime string            `json:"appointment_time"`
	Reason          string            `json:"reason"`
	BookingMode     BookingMode       `json:"booking_mode"`
	Status          AppointmentStatus `json:"status"`
	AdminNote       string            `json:"admin_note,omitempty"`
	CreatedAt       string            `json:"created_at,omitempty"`
	UpdatedAt       string            `json:"updated_at,omitempty"`
}

// UrgencyHigh reports whether the urgency value means the urgent tier.
// Unknown values count as the normal tier.
func (a Appointment) UrgencyHigh() bool {
	switch strings.ToLower(strings.TrimSpace(a.Urgency)) {
	case "urgent", "high":
		return true
	}
	return false
}

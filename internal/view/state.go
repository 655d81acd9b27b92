// Package view derives what each dashboard shows from the loaded appointment
// snapshot and the chat's filter selections. Everything here is pure: the
// snapshot comes from the backend, filters come from button presses, and the
// output is the ordered list plus the action rows to offer.
package view

import "github.com/campuscare/clinic_bot/internal/model"

// StatusAll passes every status through the status predicate.
const StatusAll = "all"

// Category is the admin compound selector: a service keyword paired with an
// urgency tier, or no filter at all.
type Category string

const (
	CategoryAll                Category = "all"
	CategoryClearanceUrgent    Category = "clearance_urgent"
	CategoryConsultationUrgent Category = "consultation_urgent"
	CategoryClearanceNormal    Category = "clearance_normal"
	CategoryConsultationNormal Category = "consultation_normal"
)

// FilterState is the transient per-chat view selection. It is never
// persisted; reopening a dashboard resets it.
type FilterState struct {
	Status   string   // StatusAll or one concrete status value
	Search   string   // admin only: substring of student name
	Category Category // admin only
	Page     int
}

// NewFilterState returns the open-dashboard default: everything visible.
func NewFilterState() FilterState {
	return FilterState{Status: StatusAll, Category: CategoryAll}
}

// Store is one loaded snapshot of appointments, kept in server order. A
// reload replaces the whole snapshot; nothing is ever patched in place.
type Store struct {
	Appointments []model.Appointment
}

// Replace swaps in a freshly fetched snapshot.
func (s *Store) Replace(appts []model.Appointment) {
	s.Appointments = appts
}

// Find returns the appointment with the given id, or false if it dropped
// out of the snapshot since the last reload.
func (s *Store) Find(id int64) (model.Appointment, bool) {
	for _, a := range s.Appointments {
		if a.ID == id {
			return a, true
		}
	}
	return model.Appointment{}, false
}

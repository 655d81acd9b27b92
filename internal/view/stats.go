package view

import "github.com/campuscare/clinic_bot/internal/model"

// Stats is the per-status tally shown in the admin dashboard header.
// Computed from the loaded snapshot, never fetched separately.
type Stats struct {
	Total     int
	Pending   int
	Approved  int
	Rejected  int
	Canceled  int
	Completed int
}

// Collect tallies a snapshot. Unrecognized statuses count toward Total only.
func Collect(appts []model.Appointment) Stats {
	var s Stats
	for _, a := range appts {
		s.Total++
		switch a.Status {
		case model.AppointmentStatusPending:
			s.Pending++
		case model.AppointmentStatusApproved:
			s.Approved++
		case model.AppointmentStatusRejected:
			s.Rejected++
		case model.AppointmentStatusCanceled:
			s.Canceled++
		case model.AppointmentStatusCompleted:
			s.Completed++
		}
	}
	return s
}

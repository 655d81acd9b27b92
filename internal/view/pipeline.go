package view

import (
	"sort"
	"strings"
	"time"

	"github.com/campuscare/clinic_bot/internal/model"
)

// categoryRule pairs the service keyword with the urgency tier it accepts.
type categoryRule struct {
	keyword string
	urgent  bool
}

var categoryRules = map[Category]categoryRule{
	CategoryClearanceUrgent:    {keyword: "clearance", urgent: true},
	CategoryConsultationUrgent: {keyword: "consultation", urgent: true},
	CategoryClearanceNormal:    {keyword: "clearance", urgent: false},
	CategoryConsultationNormal: {keyword: "consultation", urgent: false},
}

// ApplyAdmin derives the admin display list: status, name search and
// category predicates all have to hold, then the result is ordered by
// status band (pending first) and date (newest first) within a band.
func ApplyAdmin(store []model.Appointment, f FilterState) []model.Appointment {
	out := make([]model.Appointment, 0, len(store))
	for _, a := range store {
		if matchesStatus(a, f.Status) && matchesSearch(a, f.Search) && matchesCategory(a, f.Category) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := statusBand(out[i].Status), statusBand(out[j].Status)
		if bi != bj {
			return bi < bj
		}
		return dateKey(out[i].AppointmentDate).After(dateKey(out[j].AppointmentDate))
	})
	return out
}

// ApplyStudent filters by status only and keeps server order.
func ApplyStudent(store []model.Appointment, status string) []model.Appointment {
	out := make([]model.Appointment, 0, len(store))
	for _, a := range store {
		if matchesStatus(a, status) {
			out = append(out, a)
		}
	}
	return out
}

func matchesStatus(a model.Appointment, status string) bool {
	if status == "" || status == StatusAll {
		return true
	}
	return string(a.Status) == status
}

func matchesSearch(a model.Appointment, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.StudentName), strings.ToLower(term))
}

func matchesCategory(a model.Appointment, c Category) bool {
	rule, ok := categoryRules[c]
	if !ok {
		// CategoryAll and anything unrecognized pass everything
		return true
	}
	if !strings.Contains(strings.ToLower(a.ServiceType), rule.keyword) {
		return false
	}
	return matchesUrgencyTier(a.Urgency, rule.urgent)
}

// matchesUrgencyTier accepts only the two synonyms of the selected tier.
// Unknown urgency values match neither tier; they only display as "Low".
func matchesUrgencyTier(urgency string, urgent bool) bool {
	switch strings.ToLower(strings.TrimSpace(urgency)) {
	case "urgent", "high":
		return urgent
	case "normal", "low":
		return !urgent
	}
	return false
}

// statusBand is the primary sort key: actionable work floats up.
func statusBand(s model.AppointmentStatus) int {
	switch s {
	case model.AppointmentStatusPending:
		return 1
	case model.AppointmentStatusApproved:
		return 2
	default:
		return 3
	}
}

// dateKey parses the wire date for ordering. Malformed dates collapse to the
// zero time, which sorts oldest within the band, deterministically.
func dateKey(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Paginate cuts one page out of the display list. Pages are zero-based; an
// out-of-range page yields an empty slice rather than a panic.
func Paginate(list []model.Appointment, page, perPage int) []model.Appointment {
	if perPage <= 0 || page < 0 {
		return nil
	}
	start := page * perPage
	if start >= len(list) {
		return nil
	}
	end := start + perPage
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

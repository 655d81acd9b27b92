package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/clinic_bot/internal/model"
)

func appt(id int64, status model.AppointmentStatus, date string) model.Appointment {
	return model.Appointment{ID: id, Status: status, AppointmentDate: date}
}

func ids(appts []model.Appointment) []int64 {
	out := make([]int64, len(appts))
	for i, a := range appts {
		out[i] = a.ID
	}
	return out
}

func TestApplyAdmin_NoFilterOrdersByBandThenDate(t *testing.T) {
	store := []model.Appointment{
		appt(1, model.AppointmentStatusPending, "2024-01-10"),
		appt(2, model.AppointmentStatusApproved, "2024-01-12"),
		appt(3, model.AppointmentStatusCompleted, "2024-01-01"),
	}

	got := ApplyAdmin(store, NewFilterState())
	assert.Equal(t, []int64{1, 2, 3}, ids(got))
}

func TestApplyAdmin_StatusFilter(t *testing.T) {
	store := []model.Appointment{
		appt(1, model.AppointmentStatusPending, "2024-01-10"),
		appt(2, model.AppointmentStatusApproved, "2024-01-12"),
		appt(3, model.AppointmentStatusCompleted, "2024-01-01"),
	}

	f := NewFilterState()
	f.Status = string(model.AppointmentStatusApproved)

	got := ApplyAdmin(store, f)
	assert.Equal(t, []int64{2}, ids(got))
}

func TestApplyAdmin_CategorySelector(t *testing.T) {
	clearanceUrgent := model.Appointment{ID: 1, ServiceType: "Medical Clearance", Urgency: "Urgent", Status: model.AppointmentStatusPending}
	consultationUrgent := model.Appointment{ID: 2, ServiceType: "Medical Consultation", Urgency: "Urgent", Status: model.AppointmentStatusPending}
	clearanceNormal := model.Appointment{ID: 3, ServiceType: "Medical Clearance", Urgency: "Normal", Status: model.AppointmentStatusPending}
	consultationLow := model.Appointment{ID: 4, ServiceType: "medical consultation", Urgency: "low", Status: model.AppointmentStatusPending}
	unknownUrgency := model.Appointment{ID: 5, ServiceType: "Medical Clearance", Urgency: "whenever", Status: model.AppointmentStatusPending}
	store := []model.Appointment{clearanceUrgent, consultationUrgent, clearanceNormal, consultationLow, unknownUrgency}

	tests := []struct {
		category Category
		want     []int64
	}{
		{CategoryClearanceUrgent, []int64{1}},
		{CategoryConsultationUrgent, []int64{2}},
		{CategoryClearanceNormal, []int64{3}},
		{CategoryConsultationNormal, []int64{4}},
		{CategoryAll, []int64{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			f := NewFilterState()
			f.Category = tt.category
			assert.Equal(t, tt.want, ids(ApplyAdmin(store, f)))
		})
	}
}

func TestApplyAdmin_SearchMatchesNameCaseInsensitive(t *testing.T) {
	store := []model.Appointment{
		{ID: 1, StudentName: "Alice Johnson", Status: model.AppointmentStatusPending},
		{ID: 2, StudentName: "Bob Smith", Status: model.AppointmentStatusPending},
		{ID: 3, StudentName: "alicia keys", Status: model.AppointmentStatusPending},
	}

	f := NewFilterState()
	f.Search = "ALIC"

	got := ApplyAdmin(store, f)
	assert.Equal(t, []int64{1, 3}, ids(got))
}

func TestApplyAdmin_PredicatesAllHold(t *testing.T) {
	store := []model.Appointment{
		{ID: 1, StudentName: "Alice", ServiceType: "Medical Clearance", Urgency: "Urgent", Status: model.AppointmentStatusPending, AppointmentDate: "2024-03-01"},
		{ID: 2, StudentName: "Alice", ServiceType: "Medical Consultation", Urgency: "Urgent", Status: model.AppointmentStatusPending, AppointmentDate: "2024-03-02"},
		{ID: 3, StudentName: "Bob", ServiceType: "Medical Clearance", Urgency: "Urgent", Status: model.AppointmentStatusPending, AppointmentDate: "2024-03-03"},
		{ID: 4, StudentName: "Alice", ServiceType: "Medical Clearance", Urgency: "Urgent", Status: model.AppointmentStatusApproved, AppointmentDate: "2024-03-04"},
	}

	f := FilterState{Status: string(model.AppointmentStatusPending), Search: "alice", Category: CategoryClearanceUrgent}
	got := ApplyAdmin(store, f)

	require.Equal(t, []int64{1}, ids(got))
	for _, a := range got {
		assert.Equal(t, model.AppointmentStatusPending, a.Status)
		assert.Contains(t, strings.ToLower(a.StudentName), "alice")
		assert.True(t, matchesCategory(a, CategoryClearanceUrgent))
	}
}

func TestApplyAdmin_DateDescendingWithinBand(t *testing.T) {
	store := []model.Appointment{
		appt(1, model.AppointmentStatusCompleted, "2024-02-01"),
		appt(2, model.AppointmentStatusPending, "2024-01-01"),
		appt(3, model.AppointmentStatusPending, "2024-03-01"),
		appt(4, model.AppointmentStatusApproved, "2024-05-01"),
		appt(5, model.AppointmentStatusRejected, "2024-04-01"),
		appt(6, model.AppointmentStatusApproved, "2024-01-15"),
	}

	got := ApplyAdmin(store, NewFilterState())

	// pending newest-first, then approved newest-first, then the rest
	assert.Equal(t, []int64{3, 2, 4, 6, 5, 1}, ids(got))
}

func TestApplyAdmin_StableOnTies(t *testing.T) {
	// same band, same date: store order must survive
	store := []model.Appointment{
		appt(10, model.AppointmentStatusPending, "2024-01-10"),
		appt(11, model.AppointmentStatusPending, "2024-01-10"),
		appt(12, model.AppointmentStatusPending, "2024-01-10"),
	}

	got := ApplyAdmin(store, NewFilterState())
	assert.Equal(t, []int64{10, 11, 12}, ids(got))
}

func TestApplyAdmin_Idempotent(t *testing.T) {
	store := []model.Appointment{
		appt(1, model.AppointmentStatusCanceled, "2024-02-01"),
		appt(2, model.AppointmentStatusPending, "2024-01-01"),
		appt(3, model.AppointmentStatusApproved, "2024-03-01"),
	}
	f := NewFilterState()

	first := ApplyAdmin(store, f)
	second := ApplyAdmin(store, f)
	assert.Equal(t, ids(first), ids(second))
}

func TestApplyAdmin_DoesNotMutateStore(t *testing.T) {
	store := []model.Appointment{
		appt(1, model.AppointmentStatusCompleted, "2024-02-01"),
		appt(2, model.AppointmentStatusPending, "2024-01-01"),
	}

	_ = ApplyAdmin(store, NewFilterState())
	assert.Equal(t, []int64{1, 2}, ids(store))
}

func TestApplyAdmin_MalformedDateSortsOldest(t *testing.T) {
	store := []model.Appointment{
		appt(1, model.AppointmentStatusPending, "not-a-date"),
		appt(2, model.AppointmentStatusPending, "2024-01-05"),
	}

	got := ApplyAdmin(store, NewFilterState())
	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestApplyStudent_KeepsStoreOrder(t *testing.T) {
	store := []model.Appointment{
		appt(5, model.AppointmentStatusApproved, "2024-01-03"),
		appt(6, model.AppointmentStatusPending, "2024-01-05"),
		appt(7, model.AppointmentStatusApproved, "2024-01-01"),
	}

	all := ApplyStudent(store, StatusAll)
	assert.Equal(t, []int64{5, 6, 7}, ids(all))

	approved := ApplyStudent(store, string(model.AppointmentStatusApproved))
	assert.Equal(t, []int64{5, 7}, ids(approved))
}

func TestMatchesUrgencyTier(t *testing.T) {
	tests := []struct {
		urgency string
		urgent  bool
		want    bool
	}{
		{"Urgent", true, true},
		{"high", true, true},
		{"HIGH", true, true},
		{"Normal", false, true},
		{"low", false, true},
		{"Urgent", false, false},
		{"Normal", true, false},
		{"", true, false},
		{"", false, false},
		{"soonish", true, false},
		{"soonish", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchesUrgencyTier(tt.urgency, tt.urgent),
			"urgency=%q urgent=%v", tt.urgency, tt.urgent)
	}
}

func TestPaginate(t *testing.T) {
	store := []model.Appointment{
		appt(1, model.AppointmentStatusPending, ""),
		appt(2, model.AppointmentStatusPending, ""),
		appt(3, model.AppointmentStatusPending, ""),
		appt(4, model.AppointmentStatusPending, ""),
		appt(5, model.AppointmentStatusPending, ""),
	}

	assert.Equal(t, []int64{1, 2}, ids(Paginate(store, 0, 2)))
	assert.Equal(t, []int64{3, 4}, ids(Paginate(store, 1, 2)))
	assert.Equal(t, []int64{5}, ids(Paginate(store, 2, 2)))
	assert.Empty(t, Paginate(store, 3, 2))
	assert.Empty(t, Paginate(store, -1, 2))
	assert.Empty(t, Paginate(store, 0, 0))
}

func TestStore_FindAndReplace(t *testing.T) {
	var s Store
	s.Replace([]model.Appointment{appt(1, model.AppointmentStatusPending, "2024-01-01")})

	_, ok := s.Find(2)
	assert.False(t, ok)

	found, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), found.ID)

	s.Replace(nil)
	_, ok = s.Find(1)
	assert.False(t, ok)
}

package view

import (
	"testing"

	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_OpenResetsFilters(t *testing.T) {
	s := NewSessions()

	d := s.Open(10)
	d.Filter.Status = string(model.AppointmentStatusPending)
	d.Filter.Search = "alice"
	d.Filter.Page = 3
	d.MessageID = 55

	fresh := s.Open(10)
	assert.Equal(t, NewFilterState(), fresh.Filter)
	assert.Zero(t, fresh.MessageID)

	got, ok := s.Get(10)
	require.True(t, ok)
	assert.Same(t, fresh, got)
}

func TestSessions_GetAndDrop(t *testing.T) {
	s := NewSessions()

	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Open(1)
	s.Open(2)

	_, ok = s.Get(1)
	assert.True(t, ok)

	s.Drop(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
	_, ok = s.Get(2)
	assert.True(t, ok)
}

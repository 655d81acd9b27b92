package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_StateLifecycle(t *testing.T) {
	m := NewManager()

	assert.Equal(t, StateNone, m.GetState(100))

	m.SetState(100, StateLoginEmail)
	assert.Equal(t, StateLoginEmail, m.GetState(100))

	m.SetState(100, StateLoginPassword)
	assert.Equal(t, StateLoginPassword, m.GetState(100))

	m.SetState(100, StateNone)
	assert.Equal(t, StateNone, m.GetState(100))
	_, ok := m.GetData(100, "email")
	assert.False(t, ok, "StateNone must drop scratch data too")
}

func TestManager_DataSurvivesStateChanges(t *testing.T) {
	m := NewManager()

	m.SetState(7, StateBookingService)
	m.SetData(7, "service", "Medical Clearance")
	m.SetState(7, StateBookingDate)
	m.SetData(7, "date", "2026-09-01")

	all := m.GetAllData(7)
	assert.Equal(t, "Medical Clearance", all["service"])
	assert.Equal(t, "2026-09-01", all["date"])

	// GetAllData hands out a copy
	all["service"] = "mutated"
	v, _ := m.GetData(7, "service")
	assert.Equal(t, "Medical Clearance", v)
}

func TestManager_ChatsIsolated(t *testing.T) {
	m := NewManager()

	m.SetState(1, StateAssistantChat)
	m.SetState(2, StateScannerMode)

	assert.Equal(t, StateAssistantChat, m.GetState(1))
	assert.Equal(t, StateScannerMode, m.GetState(2))

	m.ClearState(1)
	assert.Equal(t, StateNone, m.GetState(1))
	assert.Equal(t, StateScannerMode, m.GetState(2))
}

func TestManager_SweepStale(t *testing.T) {
	m := NewManager()

	m.SetState(1, StateBookingService)
	m.SetState(2, StateRejectNote)
	m.users[1].Touched = time.Now().Add(-25 * time.Hour)

	removed := m.SweepStale(24 * time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, StateNone, m.GetState(1))
	assert.Equal(t, StateRejectNote, m.GetState(2))

	assert.Zero(t, m.SweepStale(24*time.Hour))
}

func TestManager_SetDataCreatesEntry(t *testing.T) {
	m := NewManager()

	m.SetData(5, "token", "abc")
	v, ok := m.GetData(5, "token")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	assert.Equal(t, StateNone, m.GetState(5))
}

package state

import (
	"sync"
	"time"
)

// Manager keeps per-chat dialog state in memory. All methods are safe for
// concurrent use from handler goroutines.
type Manager struct {
	mu    sync.RWMutex
	users map[int64]*UserData
}

func NewManager() *Manager {
	return &Manager{
		users: make(map[int64]*UserData),
	}
}

func (m *Manager) GetState(telegramID int64) UserState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if data, ok := m.users[telegramID]; ok {
		return data.State
	}
	return StateNone
}

// SetState moves a chat to the given dialog state. Setting StateNone drops
// the chat entirely, scratch data included.
func (m *Manager) SetState(telegramID int64, s UserState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s == StateNone {
		delete(m.users, telegramID)
		return
	}

	data, ok := m.users[telegramID]
	if !ok {
		data = &UserData{Data: make(map[string]interface{})}
		m.users[telegramID] = data
	}
	data.State = s
	data.Touched = time.Now()
}

func (m *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.users[telegramID]
	if !ok {
		return nil, false
	}
	value, ok := data.Data[key]
	return value, ok
}

func (m *Manager) SetData(telegramID int64, key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.users[telegramID]
	if !ok {
		data = &UserData{Data: make(map[string]interface{})}
		m.users[telegramID] = data
	}
	data.Data[key] = value
	data.Touched = time.Now()
}

func (m *Manager) ClearState(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.users, telegramID)
}

// GetAllData returns a copy of the chat's scratch values.
func (m *Manager) GetAllData(telegramID int64) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.users[telegramID]
	if !ok {
		return nil
	}

	copied := make(map[string]interface{}, len(data.Data))
	for k, v := range data.Data {
		copied[k] = v
	}
	return copied
}

// SweepStale removes dialog state untouched for longer than maxAge and
// reports how many chats were dropped.
func (m *Manager) SweepStale(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, data := range m.users {
		if data.Touched.Before(cutoff) {
			delete(m.users, id)
			removed++
		}
	}
	return removed
}

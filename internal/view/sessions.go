package view

import "sync"

// Dashboard is one chat's appointment browsing session: the rows fetched
// from the clinic plus the filters currently applied to them. A Dashboard
// is owned by its chat's update handling; the registry lock guards only
// the map itself.
type Dashboard struct {
	Filter FilterState
	Store  Store

	// MessageID is the Telegram message the dashboard is rendered in,
	// so later interactions can edit it in place.
	MessageID int
}

// Sessions tracks the open dashboard per chat.
type Sessions struct {
	mu     sync.RWMutex
	byChat map[int64]*Dashboard
}

func NewSessions() *Sessions {
	return &Sessions{
		byChat: make(map[int64]*Dashboard),
	}
}

// Open replaces any previous session for the chat with a fresh one using
// default filters.
func (s *Sessions) Open(chatID int64) *Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &Dashboard{Filter: NewFilterState()}
	s.byChat[chatID] = d
	return d
}

func (s *Sessions) Get(chatID int64) (*Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.byChat[chatID]
	return d, ok
}

func (s *Sessions) Drop(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byChat, chatID)
}

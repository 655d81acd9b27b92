package state

import (
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
)

// Adapter exposes Manager through the callbacktypes.StateManager interface
// so callback packages do not import this one directly.
type Adapter struct {
	m *Manager
}

func NewAdapter(m *Manager) *Adapter {
	return &Adapter{m: m}
}

func (a *Adapter) GetState(telegramID int64) callbacktypes.UserState {
	return callbacktypes.UserState(a.m.GetState(telegramID))
}

func (a *Adapter) SetState(telegramID int64, s callbacktypes.UserState) {
	a.m.SetState(telegramID, UserState(s))
}

func (a *Adapter) GetData(telegramID int64, key string) (interface{}, bool) {
	return a.m.GetData(telegramID, key)
}

func (a *Adapter) SetData(telegramID int64, key string, value interface{}) {
	a.m.SetData(telegramID, key, value)
}

func (a *Adapter) ClearState(telegramID int64) {
	a.m.ClearState(telegramID)
}

func (a *Adapter) GetAllData(telegramID int64) map[string]interface{} {
	return a.m.GetAllData(telegramID)
}

package callbacktypes

import (
	"github.com/campuscare/clinic_bot/internal/service"
	"github.com/campuscare/clinic_bot/internal/view"
	"go.uber.org/zap"
)

// UserState is a chat's position inside a multi-step dialog.
type UserState string

// StateManager is how callback handlers read and move dialog state.
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetAllData(telegramID int64) map[string]interface{}
}

// Handler bundles the dependencies every callback handler needs.
type Handler struct {
	Sessions     *service.SessionService
	Appointments *service.AppointmentService
	Admin        *service.AdminService
	Assistant    *service.AssistantService
	Checkin      *service.CheckinService

	Dashboards   *view.Sessions
	StateManager StateManager
	Logger       *zap.Logger
}

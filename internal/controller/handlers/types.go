package handlers

import (
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/campuscare/clinic_bot/internal/service"
	"github.com/campuscare/clinic_bot/internal/view"
	"go.uber.org/zap"
)

// Handlers carries the dependencies of the command and dialog handlers.
type Handlers struct {
	sessions     *service.SessionService
	appointments *service.AppointmentService
	admin        *service.AdminService
	assistant    *service.AssistantService
	checkin      *service.CheckinService
	dashboards   *view.Sessions
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers builds the command handler set.
func NewHandlers(
	sessions *service.SessionService,
	appointments *service.AppointmentService,
	admin *service.AdminService,
	assistant *service.AssistantService,
	checkin *service.CheckinService,
	dashboards *view.Sessions,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sessions:     sessions,
		appointments: appointments,
		admin:        admin,
		assistant:    assistant,
		checkin:      checkin,
		dashboards:   dashboards,
		stateManager: stateManager,
		logger:       logger,
	}
}

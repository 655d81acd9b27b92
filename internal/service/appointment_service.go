package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/model"
)

// AppointmentService wraps the appointment endpoints. Every mutation is
// followed by a fresh List from the caller; nothing is patched locally.
type AppointmentService struct {
	client *clinic.Client
	logger *zap.Logger
}

func NewAppointmentService(client *clinic.Client, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		client: client,
		logger: logger,
	}
}

// List fetches the full visible snapshot for the caller's role.
func (s *AppointmentService) List(ctx context.Context, token string) ([]model.Appointment, error) {
	appts, err := s.client.ListAppointments(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// Book creates a standard-mode appointment from the booking dialog.
func (s *AppointmentService) Book(ctx context.Context, token string, req clinic.CreateAppointmentRequest) (*clinic.CreateAppointmentResponse, error) {
	if req.BookingMode == "" {
		req.BookingMode = string(model.BookingModeStandard)
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	resp, err := s.client.CreateAppointment(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	s.logger.Info("Appointment booked",
		zap.Int64("appointment_id", resp.ID),
		zap.String("service_type", req.ServiceType),
		zap.String("date", req.AppointmentDate),
	)
	return resp, nil
}

// Approve requests pending -> approved.
func (s *AppointmentService) Approve(ctx context.Context, token string, id int64) error {
	_, err := s.client.UpdateAppointment(ctx, token, id, clinic.UpdateAppointmentRequest{
		Status: string(model.AppointmentStatusApproved),
	})
	if err != nil {
		return fmt.Errorf("approve appointment: %w", err)
	}
	s.logger.Info("Appointment approved", zap.Int64("appointment_id", id))
	return nil
}

// Reject requests pending -> rejected with the admin's note attached. The
// note dialog refuses an empty note before this is ever called.
func (s *AppointmentService) Reject(ctx context.Context, token string, id int64, note string) error {
	_, err := s.client.UpdateAppointment(ctx, token, id, clinic.UpdateAppointmentRequest{
		Status:    string(model.AppointmentStatusRejected),
		AdminNote: note,
	})
	if err != nil {
		return fmt.Errorf("reject appointment: %w", err)
	}
	s.logger.Info("Appointment rejected", zap.Int64("appointment_id", id))
	return nil
}

// Cancel withdraws the student's own appointment. The backend soft-cancels
// pending ones and hard-deletes the rest.
func (s *AppointmentService) Cancel(ctx context.Context, token string, id int64) error {
	_, err := s.client.DeleteAppointment(ctx, token, id)
	if err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}
	s.logger.Info("Appointment canceled", zap.Int64("appointment_id", id))
	return nil
}

// Delete removes an appointment outright (admin, or student history row).
func (s *AppointmentService) Delete(ctx context.Context, token string, id int64) error {
	_, err := s.client.DeleteAppointment(ctx, token, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	s.logger.Info("Appointment deleted", zap.Int64("appointment_id", id))
	return nil
}

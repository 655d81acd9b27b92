package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campuscare/clinic_bot/internal/checkin"
	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/model"
)

// CheckinService turns a scanned ticket photo into the one status update a
// scan may perform, through the processor that owns the suspend/resume
// discipline.
type CheckinService struct {
	processor *checkin.Processor
	logger    *zap.Logger
}

func NewCheckinService(client *clinic.Client, logger *zap.Logger, opts ...checkin.ProcessorOption) *CheckinService {
	complete := func(ctx context.Context, token string, appointmentID int64) error {
		_, err := client.UpdateAppointment(ctx, token, appointmentID, clinic.UpdateAppointmentRequest{
			Status:    string(model.AppointmentStatusCompleted),
			AdminNote: checkin.AuditNote,
		})
		return err
	}
	return &CheckinService{
		processor: checkin.NewProcessor(complete, opts...),
		logger:    logger,
	}
}

// HandleScan decodes a ticket photo and processes the payload. Photos with
// no readable code never reach the processor and never suspend intake.
func (s *CheckinService) HandleScan(ctx context.Context, chatID int64, token string, photo []byte) checkin.Result {
	payload, err := checkin.DecodeQR(photo)
	if err != nil {
		s.logger.Debug("Scan photo had no readable code", zap.Int64("chat_id", chatID), zap.Error(err))
		return checkin.Result{Outcome: checkin.OutcomeInvalidCode, Err: fmt.Errorf("decode scan: %w", err)}
	}
	return s.ProcessPayload(ctx, chatID, token, payload)
}

// ProcessPayload handles an already-decoded payload, e.g. a manually typed
// ticket number.
func (s *CheckinService) ProcessPayload(ctx context.Context, chatID int64, token, payload string) checkin.Result {
	result := s.processor.Process(ctx, chatID, token, payload)

	switch result.Outcome {
	case checkin.OutcomeCompleted:
		s.logger.Info("Check-in completed",
			zap.Int64("chat_id", chatID),
			zap.Int64("appointment_id", result.AppointmentID),
		)
	case checkin.OutcomeAlreadyScanned:
		s.logger.Warn("Ticket scanned twice",
			zap.Int64("chat_id", chatID),
			zap.Int64("appointment_id", result.AppointmentID),
		)
	case checkin.OutcomeFailed:
		s.logger.Error("Check-in failed",
			zap.Int64("chat_id", chatID),
			zap.Int64("appointment_id", result.AppointmentID),
			zap.Error(result.Err),
		)
	}
	return result
}

// ScannerBusy reports whether the chat's scanner is mid-scan.
func (s *CheckinService) ScannerBusy(chatID int64) bool {
	return s.processor.Suspended(chatID)
}

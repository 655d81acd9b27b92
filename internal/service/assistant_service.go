package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campuscare/clinic_bot/internal/chat"
	"github.com/campuscare/clinic_bot/internal/clinic"
)

// AssistantService relays chat turns to the backend assistant while keeping
// the transcript discipline: full history on every request, both sides
// appended in order afterwards.
type AssistantService struct {
	client      *clinic.Client
	transcripts *chat.TranscriptStore
	logger      *zap.Logger
}

func NewAssistantService(client *clinic.Client, transcripts *chat.TranscriptStore, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		client:      client,
		transcripts: transcripts,
		logger:      logger,
	}
}

// SendTurn runs one conversation turn. reload reports whether the reply
// indicates the assistant changed an appointment, in which case the caller
// refreshes the appointment list exactly once.
func (s *AssistantService) SendTurn(ctx context.Context, chatID int64, token, message string) (reply string, reload bool, err error) {
	history, err := s.transcripts.Load(ctx, chatID)
	if err != nil {
		return "", false, fmt.Errorf("load transcript: %w", err)
	}

	resp, err := s.client.Chat(ctx, token, clinic.ChatRequest{
		Message: message,
		History: history,
	})
	if err != nil {
		return "", false, fmt.Errorf("assistant turn: %w", err)
	}

	history = append(history,
		clinic.ChatMessage{Role: "user", Message: message},
		clinic.ChatMessage{Role: "assistant", Message: resp.Response},
	)
	if err := s.transcripts.Save(ctx, chatID, history); err != nil {
		return "", false, fmt.Errorf("save transcript: %w", err)
	}

	reload = chat.ShouldReload(resp.Response)
	if reload {
		s.logger.Info("Assistant reply signals an appointment change",
			zap.Int64("chat_id", chatID),
			zap.Int("turns", len(history)/2),
		)
	}
	return resp.Response, reload, nil
}

// Reset drops the transcript so the next message starts a new conversation.
func (s *AssistantService) Reset(ctx context.Context, chatID int64) error {
	if err := s.transcripts.Clear(ctx, chatID); err != nil {
		return fmt.Errorf("reset conversation: %w", err)
	}
	s.logger.Info("Assistant conversation reset", zap.Int64("chat_id", chatID))
	return nil
}

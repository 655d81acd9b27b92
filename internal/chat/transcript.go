// Package chat owns the assistant conversation discipline: a per-chat
// transcript that is re-sent in full on every turn, and the completion scan
// that decides when a reply warrants reloading the appointment list.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuscare/clinic_bot/internal/clinic"
)

// Transcripts outlive bot restarts but not a school day.
const transcriptTTL = 24 * time.Hour

// TranscriptStore keeps assistant transcripts in Redis, keyed by chat id.
type TranscriptStore struct {
	redis *redis.Client
}

func NewTranscriptStore(rdb *redis.Client) *TranscriptStore {
	if rdb == nil {
		panic("chat: redis client cannot be nil")
	}
	return &TranscriptStore{redis: rdb}
}

// Load returns the stored transcript. A chat with no transcript yet loads as
// empty, not as an error.
func (s *TranscriptStore) Load(ctx context.Context, chatID int64) ([]clinic.ChatMessage, error) {
	data, err := s.redis.Get(ctx, transcriptKey(chatID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("chat: load transcript: %w", err)
	}

	var history []clinic.ChatMessage
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("chat: decode transcript: %w", err)
	}
	return history, nil
}

// Save replaces the stored transcript and refreshes its TTL.
func (s *TranscriptStore) Save(ctx context.Context, chatID int64, history []clinic.ChatMessage) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("chat: marshal transcript: %w", err)
	}
	if err := s.redis.Set(ctx, transcriptKey(chatID), data, transcriptTTL).Err(); err != nil {
		return fmt.Errorf("chat: persist transcript: %w", err)
	}
	return nil
}

// Clear drops the transcript so the next turn starts a fresh conversation.
func (s *TranscriptStore) Clear(ctx context.Context, chatID int64) error {
	if err := s.redis.Del(ctx, transcriptKey(chatID)).Err(); err != nil {
		return fmt.Errorf("chat: clear transcript: %w", err)
	}
	return nil
}

func transcriptKey(chatID int64) string {
	return fmt.Sprintf("chat:transcript:%d", chatID)
}

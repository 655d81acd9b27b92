package chat

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/clinic_bot/internal/clinic"
)

func newTestStore(t *testing.T) (*TranscriptStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTranscriptStore(rdb), mr
}

func TestTranscriptStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	history := []clinic.ChatMessage{
		{Role: "user", Message: "I need a medical clearance"},
		{Role: "assistant", Message: "What date works for you?"},
		{Role: "user", Message: "next Monday"},
	}
	require.NoError(t, store.Save(ctx, 42, history))

	loaded, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, history, loaded)
}

func TestTranscriptStore_EmptyChatLoadsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	loaded, err := store.Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestTranscriptStore_Clear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 42, []clinic.ChatMessage{{Role: "user", Message: "hi"}}))
	require.NoError(t, store.Clear(ctx, 42))

	loaded, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestTranscriptStore_ChatsAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, []clinic.ChatMessage{{Role: "user", Message: "from chat one"}}))

	loaded, err := store.Load(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestTranscriptStore_EntriesExpire(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 42, []clinic.ChatMessage{{Role: "user", Message: "hi"}}))

	mr.FastForward(transcriptTTL + 1)

	loaded, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

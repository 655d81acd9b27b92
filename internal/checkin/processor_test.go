package checkin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/clinic_bot/internal/clinic"
)

const testChat = int64(100)

func completeOK(calls *atomic.Int64) CompleteFunc {
	return func(ctx context.Context, token string, id int64) error {
		calls.Add(1)
		return nil
	}
}

func completeErr(err error) CompleteFunc {
	return func(ctx context.Context, token string, id int64) error {
		return err
	}
}

func TestProcess_SuccessSuspendsForConfirmDelay(t *testing.T) {
	var calls atomic.Int64
	p := NewProcessor(completeOK(&calls),
		WithConfirmDelay(30*time.Millisecond),
		WithFailureBackoff(30*time.Millisecond))

	result := p.Process(context.Background(), testChat, "tok", "15")

	assert.Equal(t, OutcomeCompleted, result.Outcome)
	assert.Equal(t, int64(15), result.AppointmentID)
	assert.Equal(t, int64(1), calls.Load())

	// intake stays suspended through the confirmation pause
	assert.True(t, p.Suspended(testChat))
	busy := p.Process(context.Background(), testChat, "tok", "16")
	assert.Equal(t, OutcomeBusy, busy.Outcome)
	assert.Equal(t, int64(1), calls.Load(), "busy scan must not reach the backend")

	require.Eventually(t, func() bool { return !p.Suspended(testChat) },
		time.Second, 5*time.Millisecond)

	// and the next scan goes through again
	next := p.Process(context.Background(), testChat, "tok", "16")
	assert.Equal(t, OutcomeCompleted, next.Outcome)
}

func TestProcess_AlreadyScannedResumesImmediately(t *testing.T) {
	conflict := &clinic.APIError{StatusCode: http.StatusBadRequest, Detail: "already_scanned"}
	p := NewProcessor(completeErr(conflict),
		WithConfirmDelay(time.Minute),
		WithFailureBackoff(time.Minute))

	result := p.Process(context.Background(), testChat, "tok", "15")

	assert.Equal(t, OutcomeAlreadyScanned, result.Outcome)
	assert.Equal(t, int64(15), result.AppointmentID)

	// no backoff: the conflict is not transient, intake resumes at once
	assert.False(t, p.Suspended(testChat))

	// a rescan is processed again and warns again, once per scan
	again := p.Process(context.Background(), testChat, "tok", "15")
	assert.Equal(t, OutcomeAlreadyScanned, again.Outcome)
}

func TestProcess_FailureResumesAfterBackoff(t *testing.T) {
	p := NewProcessor(completeErr(errors.New("dial tcp: connection refused")),
		WithFailureBackoff(30*time.Millisecond))

	result := p.Process(context.Background(), testChat, "tok", "15")

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Empty(t, result.Detail, "transport failures carry no structured detail")
	assert.True(t, p.Suspended(testChat))

	require.Eventually(t, func() bool { return !p.Suspended(testChat) },
		time.Second, 5*time.Millisecond)
}

func TestProcess_FailureCarriesBackendDetail(t *testing.T) {
	apiErr := &clinic.APIError{StatusCode: http.StatusNotFound, Detail: "Appointment not found"}
	p := NewProcessor(completeErr(apiErr), WithFailureBackoff(time.Millisecond))

	result := p.Process(context.Background(), testChat, "tok", "999")

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, "Appointment not found", result.Detail)
}

func TestProcess_InvalidPayloadNeverCallsBackend(t *testing.T) {
	var calls atomic.Int64
	p := NewProcessor(completeOK(&calls))

	for _, payload := range []string{"", "not-a-number", "-5", "0", "12.5", "id=7"} {
		result := p.Process(context.Background(), testChat, "tok", payload)
		assert.Equal(t, OutcomeInvalidCode, result.Outcome, "payload %q", payload)
		assert.False(t, p.Suspended(testChat), "payload %q must resume immediately", payload)
	}
	assert.Equal(t, int64(0), calls.Load())
}

func TestProcess_ChatsAreIndependent(t *testing.T) {
	var calls atomic.Int64
	p := NewProcessor(completeOK(&calls), WithConfirmDelay(time.Minute))

	first := p.Process(context.Background(), 1, "tok", "15")
	require.Equal(t, OutcomeCompleted, first.Outcome)
	require.True(t, p.Suspended(1))

	// another admin's scanner is unaffected
	second := p.Process(context.Background(), 2, "tok", "16")
	assert.Equal(t, OutcomeCompleted, second.Outcome)
}

// The full wire path: processor -> clinic client -> backend answering the
// lowercase conflict code the real server ships.
func TestProcess_ConflictOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/appointments/15" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"already_scanned"}`))
	}))
	defer server.Close()

	client := clinic.NewClient(server.URL)
	complete := func(ctx context.Context, token string, id int64) error {
		_, err := client.UpdateAppointment(ctx, token, id, clinic.UpdateAppointmentRequest{
			Status:    "completed",
			AdminNote: AuditNote,
		})
		return err
	}

	p := NewProcessor(complete, WithFailureBackoff(time.Minute))
	result := p.Process(context.Background(), testChat, "tok", "15")

	assert.Equal(t, OutcomeAlreadyScanned, result.Outcome)
	assert.False(t, p.Suspended(testChat))
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		payload string
		want    int64
		wantErr bool
	}{
		{"15", 15, false},
		{" 15 \n", 15, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"15a", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePayload(tt.payload)
		if tt.wantErr {
			assert.Error(t, err, "payload %q", tt.payload)
		} else {
			require.NoError(t, err, "payload %q", tt.payload)
			assert.Equal(t, tt.want, got)
		}
	}
}

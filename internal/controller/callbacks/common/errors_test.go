package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "no session",
			err:  ErrNoSession,
			want: "🔒 Please log in first with /login",
		},
		{
			name: "wrapped sentinel",
			err:  fmt.Errorf("load session: %w", ErrNoSession),
			want: "🔒 Please log in first with /login",
		},
		{
			name: "not admin",
			err:  ErrNotAdmin,
			want: "⛔ This action is for clinic staff only",
		},
		{
			name: "expired token",
			err:  fmt.Errorf("list appointments: %w", &clinic.APIError{StatusCode: 401, Detail: "Invalid or expired token"}),
			want: "🔒 Your session has expired. Please /login again",
		},
		{
			name: "backend detail surfaces",
			err:  &clinic.APIError{StatusCode: 400, Detail: "email already registered"},
			want: "⚠️ email already registered",
		},
		{
			name: "backend error without detail",
			err:  &clinic.APIError{StatusCode: 500},
			want: "⚠️ The clinic could not process the request",
		},
		{
			name: "validation error shows the friendly part",
			err:  fmt.Errorf("%w: please enter a valid email address", service.ErrInvalidInput),
			want: "⚠️ please enter a valid email address",
		},
		{
			name: "transport error stays generic",
			err:  errors.New("dial tcp 10.0.0.1:443: connect: connection refused"),
			want: "📡 Could not reach the clinic right now. Please try again",
		},
		{
			name: "nil",
			err:  nil,
			want: "❌ Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestErrorMessage_UnauthorizedBeatsGenericAPIError(t *testing.T) {
	// a 401 is an APIError too; the session-expired wording must win
	err := &clinic.APIError{StatusCode: 401, Detail: "invalid or expired token"}
	assert.Equal(t, "🔒 Your session has expired. Please /login again", ErrorMessage(err))
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.False(t, IsMessageNotModifiedError(errors.New("bad request")))
	assert.True(t, IsMessageNotModifiedError(
		errors.New("telegram: Bad Request: message is not modified (400)")))
}

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback("adm_view:42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseIDFromCallback("adm_view")
	assert.Error(t, err)

	_, err = ParseIDFromCallback("adm_view:x:7")
	assert.Error(t, err)
}

func TestParseSuffixFromCallback(t *testing.T) {
	s, err := ParseSuffixFromCallback("adm_status:pending")
	assert.NoError(t, err)
	assert.Equal(t, "pending", s)

	// suffix may itself contain separators
	s, err = ParseSuffixFromCallback("usr_role:super_admin")
	assert.NoError(t, err)
	assert.Equal(t, "super_admin", s)

	_, err = ParseSuffixFromCallback("adm_status:")
	assert.Error(t, err)
}

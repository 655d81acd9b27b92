package clinic

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DetailAlreadyScanned is the backend's conflict code for completing an
// appointment that is already completed. Matched case-insensitively because
// the backend has shipped both spellings.
const DetailAlreadyScanned = "ALREADY_SCANNED"

// APIError is a non-2xx backend response. Detail holds the backend's
// structured "detail" string when it was human-readable, otherwise "".
// Transport failures are plain wrapped errors, never an APIError.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("clinic: api status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("clinic: api status %d", e.StatusCode)
}

// DetailIs compares the structured detail code case-insensitively.
func (e *APIError) DetailIs(code string) bool {
	return strings.EqualFold(strings.TrimSpace(e.Detail), code)
}

// Unauthorized reports a 401, meaning the stored token is no longer accepted.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Unauthorized()
}

// IsAlreadyScanned reports the double check-in conflict.
func IsAlreadyScanned(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.DetailIs(DetailAlreadyScanned)
}

// parseDetail extracts a human-readable detail string from an error body.
// The backend answers either {"detail": "text"} or, for validation failures,
// {"detail": [{"msg": "..."}, ...]}; anything else yields "".
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		for _, item := range items {
			if msg := strings.TrimSpace(item.Msg); msg != "" {
				return msg
			}
		}
	}
	return ""
}

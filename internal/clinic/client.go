// Package clinic provides a typed client for the school clinic REST backend.
// The backend owns every business rule; this client only shapes requests,
// decodes responses and classifies failures.
package clinic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campuscare/clinic_bot/internal/model"
)

// Client talks to the clinic backend over JSON/HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client, e.g. one with a timeout.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a backend client. baseURL is the server root, e.g.
// "http://localhost:8000"; all paths live under /api. The default HTTP
// client carries no timeout: a hung backend hangs the one affordance that
// called it, and context cancellation still applies.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a student account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAppointments returns the caller's visible appointments: their own for
// students, everyone's for admins. Order is as served; the backend sorts by
// date and time descending.
func (c *Client) ListAppointments(ctx context.Context, token string) ([]model.Appointment, error) {
	var out []model.Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAppointment books a new visit for the authenticated student.
func (c *Client) CreateAppointment(ctx context.Context, token string, req CreateAppointmentRequest) (*CreateAppointmentResponse, error) {
	var out CreateAppointmentResponse
	if err := c.do(ctx, http.MethodPost, "/api/appointments", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAppointment requests a status transition, optionally with a note.
func (c *Client) UpdateAppointment(ctx context.Context, token string, id int64, req UpdateAppointmentRequest) (*MessageResponse, error) {
	var out MessageResponse
	path := "/api/appointments/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPut, path, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAppointment removes or cancels an appointment. For students the
// backend soft-cancels pending appointments and hard-deletes the rest; for
// admins it always hard-deletes.
func (c *Client) DeleteAppointment(ctx context.Context, token string, id int64) (*MessageResponse, error) {
	var out MessageResponse
	path := "/api/appointments/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns all accounts. Backend restricts this to admins.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/api/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser provisions an account with an explicit role. Super admin only.
func (c *Client) CreateUser(ctx context.Context, token string, req CreateUserRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/create-user", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account. Super admin only; the backend refuses
// self-deletion.
func (c *Client) DeleteUser(ctx context.Context, token string, id int64) (*MessageResponse, error) {
	var out MessageResponse
	path := "/api/users/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat sends one assistant turn with the full prior transcript.
func (c *Client) Chat(ctx context.Context, token string, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do runs one JSON request. Transport failures come back as wrapped plain
// errors; non-2xx responses as *APIError with the parsed detail.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("clinic: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("clinic: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("clinic request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clinic: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(raw)}
		c.logger.Warn("clinic request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail),
			zap.String("request_id", requestID))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("clinic: decode response: %w", err)
	}
	return nil
}

package clinic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuscare/clinic_bot/internal/model"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client with defaults", func(t *testing.T) {
		client := NewClient("http://localhost:8000")
		if client == nil {
			t.Fatal("expected non-nil client")
		}
		if client.baseURL != "http://localhost:8000" {
			t.Errorf("expected baseURL http://localhost:8000, got %s", client.baseURL)
		}
		if client.httpClient.Timeout != 0 {
			t.Errorf("expected no default timeout, got %v", client.httpClient.Timeout)
		}
	})

	t.Run("creates client with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client := NewClient("http://localhost:8000", WithHTTPClient(customClient))
		if client.httpClient != customClient {
			t.Error("expected custom HTTP client to be set")
		}
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("successful login", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/login" {
				t.Errorf("expected path /api/login, got %s", r.URL.Path)
			}
			if r.Method != http.MethodPost {
				t.Errorf("expected POST method, got %s", r.Method)
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Error("expected Content-Type application/json")
			}
			if r.Header.Get("X-Request-Id") == "" {
				t.Error("expected X-Request-Id header")
			}

			var req LoginRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if req.Email != "nurse@school.edu" {
				t.Errorf("unexpected email: %s", req.Email)
			}

			json.NewEncoder(w).Encode(LoginResponse{
				Token:    "tok-abc",
				Role:     "admin",
				UserID:   7,
				FullName: "Nurse Joy",
			})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		resp, err := client.Login(context.Background(), LoginRequest{
			Email:    "nurse@school.edu",
			Password: "secret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Token != "tok-abc" {
			t.Errorf("expected token tok-abc, got %s", resp.Token)
		}
		if resp.Role != "admin" {
			t.Errorf("expected role admin, got %s", resp.Role)
		}
		if resp.UserID != 7 {
			t.Errorf("expected user_id 7, got %d", resp.UserID)
		}
	})

	t.Run("invalid credentials surface the detail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid email or password"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Login(context.Background(), LoginRequest{Email: "x@y.z", Password: "no"})
		if err == nil {
			t.Fatal("expected error")
		}
		apiErr, ok := AsAPIError(err)
		if !ok {
			t.Fatalf("expected APIError, got %T", err)
		}
		if apiErr.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", apiErr.StatusCode)
		}
		if apiErr.Detail != "Invalid email or password" {
			t.Errorf("unexpected detail: %q", apiErr.Detail)
		}
		if !apiErr.Unauthorized() {
			t.Error("expected Unauthorized to be true")
		}
	})

	t.Run("validation errors extract the first message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error.email"}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "x"})
		apiErr, ok := AsAPIError(err)
		if !ok {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Detail != "value is not a valid email address" {
			t.Errorf("unexpected detail: %q", apiErr.Detail)
		}
	})
}

func TestClient_ListAppointments(t *testing.T) {
	t.Run("sends bearer token and decodes the list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/appointments" {
				t.Errorf("expected path /api/appointments, got %s", r.URL.Path)
			}
			if r.Method != http.MethodGet {
				t.Errorf("expected GET method, got %s", r.Method)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
				t.Errorf("expected bearer auth, got %q", got)
			}

			json.NewEncoder(w).Encode([]model.Appointment{
				{ID: 2, ServiceType: "Medical Clearance", Status: model.AppointmentStatusApproved},
				{ID: 1, ServiceType: "Medical Consultation", Status: model.AppointmentStatusPending},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		appts, err := client.ListAppointments(context.Background(), "tok-abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(appts) != 2 {
			t.Fatalf("expected 2 appointments, got %d", len(appts))
		}
		if appts[0].ID != 2 || appts[1].ID != 1 {
			t.Error("expected server order to be preserved")
		}
	})

	t.Run("401 becomes an unauthorized APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid or expired token"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.ListAppointments(context.Background(), "stale")
		if !IsUnauthorized(err) {
			t.Errorf("expected IsUnauthorized, got %v", err)
		}
	})
}

func TestClient_CreateAppointment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/appointments" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.BookingMode != "standard" {
			t.Errorf("unexpected booking_mode: %s", req.BookingMode)
		}
		if req.AppointmentDate != "2026-09-01" {
			t.Errorf("unexpected date: %s", req.AppointmentDate)
		}
		json.NewEncoder(w).Encode(CreateAppointmentResponse{Message: "Appointment created", ID: 41})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.CreateAppointment(context.Background(), "tok", CreateAppointmentRequest{
		AppointmentDate: "2026-09-01",
		AppointmentTime: "10:30",
		ServiceType:     "Medical Consultation",
		Urgency:         "Normal",
		Reason:          "headache",
		BookingMode:     "standard",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ID != 41 {
		t.Errorf("expected id 41, got %d", resp.ID)
	}
}

func TestClient_UpdateAppointment(t *testing.T) {
	t.Run("puts status and note to the id path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT method, got %s", r.Method)
			}
			if r.URL.Path != "/api/appointments/15" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			var req UpdateAppointmentRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if req.Status != "completed" || req.AdminNote != "Checked in via QR scanner" {
				t.Errorf("unexpected body: %+v", req)
			}
			json.NewEncoder(w).Encode(MessageResponse{Message: "Appointment updated"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.UpdateAppointment(context.Background(), "tok", 15, UpdateAppointmentRequest{
			Status:    "completed",
			AdminNote: "Checked in via QR scanner",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("double scan conflict is recognized either spelling", func(t *testing.T) {
		for _, detail := range []string{"already_scanned", "ALREADY_SCANNED"} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"detail": detail})
			}))

			client := NewClient(server.URL)
			_, err := client.UpdateAppointment(context.Background(), "tok", 15, UpdateAppointmentRequest{Status: "completed"})
			if !IsAlreadyScanned(err) {
				t.Errorf("detail %q: expected IsAlreadyScanned, got %v", detail, err)
			}
			server.Close()
		}
	})
}

func TestClient_DeleteAppointment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE method, got %s", r.Method)
		}
		if r.URL.Path != "/api/appointments/9" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(MessageResponse{Message: "Appointment canceled"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.DeleteAppointment(context.Background(), "tok", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "Appointment canceled" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}

func TestClient_UserManagement(t *testing.T) {
	t.Run("list users", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/users" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]model.User{
				{ID: 1, FullName: "Super Admin", Email: "root@school.edu", Role: model.RoleSuperAdmin},
				{ID: 2, FullName: "Sam Student", Email: "sam@school.edu", Role: model.RoleStudent},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		users, err := client.ListUsers(context.Background(), "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("expected 2 users, got %d", len(users))
		}
		if !users[0].Role.IsAdmin() {
			t.Error("expected super_admin to count as admin")
		}
	})

	t.Run("create user hits the admin path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/admin/create-user" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			var req CreateUserRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Role != "admin" {
				t.Errorf("unexpected role: %s", req.Role)
			}
			json.NewEncoder(w).Encode(MessageResponse{Message: "User created"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.CreateUser(context.Background(), "tok", CreateUserRequest{
			FullName: "New Nurse",
			Email:    "nurse2@school.edu",
			Password: "pass",
			Role:     "admin",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("self delete refusal surfaces detail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/users/1" || r.Method != http.MethodDelete {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Cannot delete your own account"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.DeleteUser(context.Background(), "tok", 1)
		apiErr, ok := AsAPIError(err)
		if !ok {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Detail != "Cannot delete your own account" {
			t.Errorf("unexpected detail: %q", apiErr.Detail)
		}
	})
}

func TestClient_Chat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.History) != 2 {
			t.Fatalf("expected full history resent, got %d entries", len(req.History))
		}
		if req.History[0].Role != "user" || req.History[1].Role != "assistant" {
			t.Errorf("unexpected history roles: %+v", req.History)
		}
		json.NewEncoder(w).Encode(ChatResponse{Response: "Your appointment is booked!"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Chat(context.Background(), "tok", ChatRequest{
		Message: "tomorrow at 10 works",
		History: []ChatMessage{
			{Role: "user", Message: "I need a checkup"},
			{Role: "assistant", Message: "When works for you?"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Response == "" {
		t.Error("expected a reply")
	}
}

func TestClient_TransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1") // nothing listens here
	_, err := client.ListAppointments(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected error for unreachable backend")
	}
	if _, ok := AsAPIError(err); ok {
		t.Error("transport failure must not be an APIError")
	}
}

func TestParseDetail(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"plain string", `{"detail":"No time slots available"}`, "No time slots available"},
		{"validation array", `{"detail":[{"msg":"field required"}]}`, "field required"},
		{"empty object", `{}`, ""},
		{"not json", `<html>bad gateway</html>`, ""},
		{"detail object", `{"detail":{"code":5}}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseDetail([]byte(tc.body)); got != tc.want {
				t.Errorf("parseDetail(%s) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

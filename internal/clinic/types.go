package clinic

// LoginRequest is the credentials payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session the backend issues on success.
type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
}

// RegisterRequest is the self-service signup payload for POST /api/register.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// CreateAppointmentRequest books a visit. Dates stay strings; the backend
// validates them.
type CreateAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
	ServiceType     string `json:"service_type" validate:"required"`
	Urgency         string `json:"urgency" validate:"required"`
	Reason          string `json:"reason" validate:"required"`
	BookingMode     string `json:"booking_mode" validate:"required,oneof=standard ai_chatbot"`
}

// CreateAppointmentResponse returns the id of the created appointment.
type CreateAppointmentResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// UpdateAppointmentRequest requests a status transition. The backend is the
// sole authority on whether the transition is legal.
type UpdateAppointmentRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note,omitempty"`
}

// CreateUserRequest provisions an account via POST /api/admin/create-user.
type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role" validate:"required,oneof=student admin super_admin"`
}

// ChatMessage is one transcript entry; Role is "user" or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// ChatRequest carries the new utterance plus the full prior transcript.
// The assistant keeps no server-side session, so history is resent each turn.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}

// ChatResponse is the assistant's reply text.
type ChatResponse struct {
	Response string `json:"response"`
}

// MessageResponse is the generic {"message": ...} acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

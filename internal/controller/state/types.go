package state

import "time"

// UserState is where a chat currently is inside a multi-step dialog.
type UserState string

const (
	StateNone UserState = "" // no active dialog

	// login dialog
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	// registration dialog
	StateRegisterName     UserState = "register_name"
	StateRegisterEmail    UserState = "register_email"
	StateRegisterPassword UserState = "register_password"

	// booking dialog
	StateBookingService UserState = "booking_service"
	StateBookingDate    UserState = "booking_date"
	StateBookingTime    UserState = "booking_time"
	StateBookingUrgency UserState = "booking_urgency"
	StateBookingReason  UserState = "booking_reason"
	StateBookingConfirm UserState = "booking_confirm"

	// admin dialogs
	StateRejectNote  UserState = "reject_note"
	StateSearchName  UserState = "search_name"
	StateScannerMode UserState = "scanner_mode"

	// super admin account creation
	StateCreateUserName     UserState = "create_user_name"
	StateCreateUserEmail    UserState = "create_user_email"
	StateCreateUserPassword UserState = "create_user_password"
	StateCreateUserRole     UserState = "create_user_role"

	// assistant chat mode
	StateAssistantChat UserState = "assistant_chat"
)

// UserData holds a chat's dialog position and scratch values. Touched is
// bumped on every write so abandoned dialogs can be swept.
type UserData struct {
	State   UserState
	Data    map[string]interface{}
	Touched time.Time
}

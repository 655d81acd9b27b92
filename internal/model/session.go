package model

import "time"

// Session binds a Telegram chat to a backend login. The token is opaque to
// the bot; it is stored as received and dropped when the backend answers 401.
type Session struct {
	TelegramID int64     `json:"telegram_id"`
	Token      string    `json:"token"`
	Role       Role      `json:"role"`
	UserID     int64     `json:"user_id"`
	FullName   string    `json:"full_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

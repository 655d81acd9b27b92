package handlers

// Dialog input limits
const (
	// Passwords, matching the clinic's own minimum
	PasswordMinLength = 4

	// Reason for a visit
	ReasonMaxLength = 500

	// Rejection note shown to the student
	NoteMaxLength = 300

	// Student name search term
	SearchTermMaxLength = 64
)

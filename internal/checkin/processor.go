package checkin

import (
	"context"
	"sync"
	"time"

	"github.com/campuscare/clinic_bot/internal/clinic"
)

// AuditNote is written on every scan-driven completion so the record shows
// how it was checked in.
const AuditNote = "Checked in via QR scanner"

const (
	// confirmDelay keeps intake suspended briefly after a successful check-in
	// so the same ticket held up to the camera is not processed twice.
	confirmDelay = 2 * time.Second
	// failureBackoff is the fixed pause before retrying after any failure
	// that is not the already-scanned conflict.
	failureBackoff = 3 * time.Second
)

// Outcome classifies one processed scan.
type Outcome string

const (
	OutcomeCompleted      Outcome = "completed"       // checked in, confirmation shown
	OutcomeAlreadyScanned Outcome = "already_scanned" // conflict: not transient, no backoff
	OutcomeFailed         Outcome = "failed"          // network or other backend failure
	OutcomeBusy           Outcome = "busy"            // a previous scan is still being handled
	OutcomeInvalidCode    Outcome = "invalid_code"    // payload was not an appointment id
)

// Result is what one scan produced. Detail carries the backend's message for
// failed outcomes when one was usable.
type Result struct {
	Outcome       Outcome
	AppointmentID int64
	Detail        string
	Err           error
}

// CompleteFunc performs the one remote call a scan makes: set the
// appointment to completed with the audit note attached.
type CompleteFunc func(ctx context.Context, token string, appointmentID int64) error

// Processor serializes scan handling per admin chat. While a scan is being
// handled (including the post-confirm and post-failure pauses) further scans
// from the same chat are answered busy instead of being processed.
type Processor struct {
	complete       CompleteFunc
	confirmDelay   time.Duration
	failureBackoff time.Duration

	mu        sync.Mutex
	suspended map[int64]bool
}

// ProcessorOption tweaks delays, used by tests.
type ProcessorOption func(*Processor)

func WithConfirmDelay(d time.Duration) ProcessorOption {
	return func(p *Processor) { p.confirmDelay = d }
}

func WithFailureBackoff(d time.Duration) ProcessorOption {
	return func(p *Processor) { p.failureBackoff = d }
}

func NewProcessor(complete CompleteFunc, opts ...ProcessorOption) *Processor {
	p := &Processor{
		complete:       complete,
		confirmDelay:   confirmDelay,
		failureBackoff: failureBackoff,
		suspended:      make(map[int64]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Suspended reports whether a chat's scan intake is currently paused.
func (p *Processor) Suspended(chatID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.suspended[chatID]
}

// Process handles one decoded payload for one admin chat.
//
// Intake is suspended for the duration. A success keeps it suspended for the
// confirmation delay; the already-scanned conflict resumes immediately since
// rescanning will not fix it; any other failure resumes after the fixed
// backoff. The returned Result is available immediately either way.
func (p *Processor) Process(ctx context.Context, chatID int64, token, payload string) Result {
	p.mu.Lock()
	if p.suspended[chatID] {
		p.mu.Unlock()
		return Result{Outcome: OutcomeBusy}
	}
	p.suspended[chatID] = true
	p.mu.Unlock()

	id, err := ParsePayload(payload)
	if err != nil {
		p.resume(chatID)
		return Result{Outcome: OutcomeInvalidCode, Err: err}
	}

	err = p.complete(ctx, token, id)
	switch {
	case err == nil:
		p.resumeAfter(chatID, p.confirmDelay)
		return Result{Outcome: OutcomeCompleted, AppointmentID: id}
	case clinic.IsAlreadyScanned(err):
		p.resume(chatID)
		return Result{Outcome: OutcomeAlreadyScanned, AppointmentID: id, Err: err}
	default:
		result := Result{Outcome: OutcomeFailed, AppointmentID: id, Err: err}
		if apiErr, ok := clinic.AsAPIError(err); ok {
			result.Detail = apiErr.Detail
		}
		p.resumeAfter(chatID, p.failureBackoff)
		return result
	}
}

func (p *Processor) resume(chatID int64) {
	p.mu.Lock()
	delete(p.suspended, chatID)
	p.mu.Unlock()
}

func (p *Processor) resumeAfter(chatID int64, d time.Duration) {
	if d <= 0 {
		p.resume(chatID)
		return
	}
	time.AfterFunc(d, func() { p.resume(chatID) })
}

package common

import (
	"fmt"
	"html"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot/models"
)

// The booking dialog walks five steps: service, date, time, urgency, reason.
// Each step accepts either a button tap or typed text, so these screens are
// shared by the callback handlers and the text-message handlers.

// BuildBookingServiceScreen is step 1: pick the clinic service.
func BuildBookingServiceScreen() (string, *models.InlineKeyboardMarkup) {
	text := "➕ <b>Book an appointment</b>\n\n" +
		"Step 1 of 5 · <b>Service</b>\n\n" +
		"Which service do you need?"

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🩺 Medical Consultation", "book_svc:consultation")).
		Row(keyboard.Button("📋 Medical Clearance", "book_svc:clearance")).
		Row(keyboard.CancelButton("book_cancel")).
		Build()

	return text, kb
}

// BuildBookingDateScreen is step 2: pick or type the visit date.
func BuildBookingDateScreen(service string) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"🩺 %s\n\n"+
			"Step 2 of 5 · <b>Date</b>\n\n"+
			"When would you like to come in? Send a date as "+
			"<b>YYYY-MM-DD</b> (for example 2026-09-01), or pick one:",
		html.EscapeString(service),
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📅 Today", "book_date:today"),
			keyboard.Button("📅 Tomorrow", "book_date:tomorrow"),
		).
		Row(keyboard.CancelButton("book_cancel")).
		Build()

	return text, kb
}

// BuildBookingTimeScreen is step 3: pick or type the visit time.
func BuildBookingTimeScreen(date string) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"📅 %s\n\n"+
			"Step 3 of 5 · <b>Time</b>\n\n"+
			"What time suits you? Send a time as <b>HH:MM</b> (24-hour clock), "+
			"or pick one:",
		formatting.FormatDateHuman(date),
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("09:00", "book_time:09:00"),
			keyboard.Button("10:00", "book_time:10:00"),
			keyboard.Button("11:00", "book_time:11:00"),
		).
		Row(
			keyboard.Button("14:00", "book_time:14:00"),
			keyboard.Button("15:00", "book_time:15:00"),
			keyboard.Button("16:00", "book_time:16:00"),
		).
		Row(keyboard.CancelButton("book_cancel")).
		Build()

	return text, kb
}

// BuildBookingUrgencyScreen is step 4: how urgent the visit is.
func BuildBookingUrgencyScreen() (string, *models.InlineKeyboardMarkup) {
	text := "Step 4 of 5 · <b>Urgency</b>\n\n" +
		"How urgent is it? Urgent cases are reviewed first."

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("🟢 Normal", "book_urgency:Normal"),
			keyboard.Button("🔴 Urgent", "book_urgency:Urgent"),
		).
		Row(keyboard.CancelButton("book_cancel")).
		Build()

	return text, kb
}

// BuildBookingReasonScreen is step 5: free-text reason for the visit.
func BuildBookingReasonScreen() (string, *models.InlineKeyboardMarkup) {
	text := "Step 5 of 5 · <b>Reason</b>\n\n" +
		"Briefly describe why you need the visit. The clinic reads this when " +
		"reviewing your request."

	kb := keyboard.NewBuilder().
		Row(keyboard.CancelButton("book_cancel")).
		Build()

	return text, kb
}

// BuildBookingConfirmScreen shows the summary before submitting.
func BuildBookingConfirmScreen(service, date, tm, urgency, reason string) (string, *models.InlineKeyboardMarkup) {
	urgencyBadge := "🟢"
	if urgency == "Urgent" {
		urgencyBadge = "🔴"
	}

	text := fmt.Sprintf(
		"🧾 <b>Please confirm</b>\n\n"+
			"🩺 Service: %s\n"+
			"📅 When: %s\n"+
			"%s Urgency: %s\n"+
			"📝 Reason: %s\n\n"+
			"Book this appointment?",
		html.EscapeString(service),
		formatting.FormatDateTimeHuman(date, tm),
		urgencyBadge, html.EscapeString(urgency),
		html.EscapeString(reason),
	)

	kb := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons("book_confirm", "book_cancel")).
		Build()

	return text, kb
}

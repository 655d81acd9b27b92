package student

import (
	"context"
	"time"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// serviceNames maps short callback keys to the service names the clinic
// expects verbatim.
var serviceNames = map[string]string{
	"consultation": "Medical Consultation",
	"clearance":    "Medical Clearance",
}

// HandleStartBooking (book_new) opens the booking dialog at the service step.
func HandleStartBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateBookingService))

		text, kb := common.BuildBookingServiceScreen()
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to open booking dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleServicePick (book_svc:key) records the service and moves to the date step.
func HandleServicePick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		key, err := common.ParseSuffixFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "booking service pick")
			return
		}
		service, ok := serviceNames[key]
		if !ok {
			common.HandleError(hc, common.ErrInvalidFormat, "booking service pick")
			return
		}

		hc.SetData("service", service)
		hc.SetState(callbacktypes.UserState(state.StateBookingDate))

		text, kb := common.BuildBookingDateScreen(service)
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show date step", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleDatePick (book_date:today|tomorrow) records a quick-pick date and
// moves to the time step. Typed dates arrive through the text dialog instead.
func HandleDatePick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		choice, err := common.ParseSuffixFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "booking date pick")
			return
		}

		day := time.Now()
		switch choice {
		case "today":
		case "tomorrow":
			day = day.AddDate(0, 0, 1)
		default:
			common.HandleError(hc, common.ErrInvalidFormat, "booking date pick")
			return
		}
		date := day.Format("2006-01-02")

		hc.SetData("date", date)
		hc.SetState(callbacktypes.UserState(state.StateBookingTime))

		text, kb := common.BuildBookingTimeScreen(date)
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show time step", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleTimePick (book_time:HH:MM) records a preset time and moves to the
// urgency step.
func HandleTimePick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		tm, err := common.ParseSuffixFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "booking time pick")
			return
		}

		hc.SetData("time", tm)
		hc.SetState(callbacktypes.UserState(state.StateBookingUrgency))

		text, kb := common.BuildBookingUrgencyScreen()
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show urgency step", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleUrgencyPick (book_urgency:Normal|Urgent) records the urgency and
// moves to the reason step.
func HandleUrgencyPick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		urgency, err := common.ParseSuffixFromCallback(callback.Data)
		if err != nil || (urgency != "Normal" && urgency != "Urgent") {
			common.HandleError(hc, common.ErrInvalidFormat, "booking urgency pick")
			return
		}

		hc.SetData("urgency", urgency)
		hc.SetState(callbacktypes.UserState(state.StateBookingReason))

		text, kb := common.BuildBookingReasonScreen()
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show reason step", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmBooking (book_confirm) submits the collected request. On
// success the dialog closes and an open dashboard is re-fetched so the new
// appointment shows up with its backend-assigned state.
func HandleConfirmBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		data := hc.Handler.StateManager.GetAllData(hc.TelegramID)
		service, _ := data["service"].(string)
		date, _ := data["date"].(string)
		tm, _ := data["time"].(string)
		urgency, _ := data["urgency"].(string)
		reason, _ := data["reason"].(string)

		if service == "" || date == "" || tm == "" || urgency == "" || reason == "" {
			hc.ClearState()
			hc.AnswerAlert("❌ The booking details got lost. Please start over with /book")
			return
		}

		resp, err := hc.Handler.Appointments.Book(hc.Ctx, hc.Session.Token, clinic.CreateAppointmentRequest{
			AppointmentDate: date,
			AppointmentTime: tm,
			ServiceType:     service,
			Urgency:         urgency,
			Reason:          reason,
		})
		if err != nil {
			common.HandleError(hc, err, "book appointment")
			return
		}

		hc.ClearState()

		text := "✅ <b>Appointment booked!</b>\n\n" +
			"The clinic will review your request. You will see the decision on your dashboard."
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📅 My appointments", "appt_list")).
			AddMainMenuButton().
			Build()
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show booking success", zap.Error(err))
		}

		hc.Handler.Logger.Info("Appointment booked",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("appointment_id", resp.ID))

		refreshOpenDashboard(hc)
		hc.Answer("✅ Booked")
	})
}

// HandleCancelBookingDialog (book_cancel) abandons the dialog at any step.
func HandleCancelBookingDialog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📅 My appointments", "appt_list")).
			AddMainMenuButton().
			Build()
		if err := hc.EditMessage("❌ Booking canceled. Nothing was sent to the clinic.", kb); err != nil {
			hc.Handler.Logger.Error("Failed to close booking dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// refreshOpenDashboard redraws the chat's dashboard message after a write so
// it never shows a stale list. Failures only log; the write already succeeded.
func refreshOpenDashboard(hc *common.HandlerContext) {
	d, ok := hc.Dashboard()
	if !ok || d.MessageID == 0 {
		return
	}

	appts, err := hc.Handler.Appointments.List(hc.Ctx, hc.Session.Token)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to refresh dashboard after booking",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err))
		return
	}
	d.Store.Replace(appts)

	text, kb := common.BuildStudentDashboardScreen(d)
	_, err = hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   d.MessageID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil && !common.IsMessageNotModifiedError(err) {
		hc.Handler.Logger.Warn("Failed to redraw dashboard after booking", zap.Error(err))
	}
}

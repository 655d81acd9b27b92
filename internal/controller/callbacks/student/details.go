package student

import (
	"bytes"
	"context"
	"fmt"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/campuscare/clinic_bot/internal/ticket"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleViewAppointment (appt_view:ID) shows one appointment with the
// actions its status allows.
func HandleViewAppointment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, ok := findAppointment(hc)
		if !ok {
			return
		}

		text, kb := common.BuildAppointmentDetailScreen(a, hc.Session.Role)
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show appointment", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleCancelAppointment (appt_cancel:ID) asks for confirmation first. A
// pending appointment is marked canceled by the clinic; an approved one is
// removed outright, so the wording warns about that.
func HandleCancelAppointment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, ok := findAppointment(hc)
		if !ok {
			return
		}

		text := fmt.Sprintf(
			"❓ Cancel appointment <b>#%d</b>?\n\nThis tells the clinic you are not coming.",
			a.ID,
		)
		if a.Status == model.AppointmentStatusApproved {
			text += "\n\n⚠️ It was already approved; canceling removes it entirely."
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("✅ Yes, cancel it", fmt.Sprintf("appt_cancel_yes:%d", a.ID))).
			Row(keyboard.Button("⬅️ Keep it", fmt.Sprintf("appt_view:%d", a.ID))).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show cancel confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmCancel (appt_cancel_yes:ID) withdraws the appointment, then
// re-fetches the list so the dashboard reflects what the clinic now has.
func HandleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "confirm cancel")
			return
		}

		if err := hc.Handler.Appointments.Cancel(hc.Ctx, hc.Session.Token, id); err != nil {
			common.HandleError(hc, err, "cancel appointment")
			return
		}

		d, err := Reload(hc)
		if err != nil {
			common.HandleError(hc, err, "reload after cancel")
			return
		}
		Render(hc, d)
		common.LogAndAnswer(hc, "Appointment canceled", "❌ Appointment canceled")
	})
}

// HandleRemoveAppointment (appt_remove:ID) confirms deleting a finished
// entry from history.
func HandleRemoveAppointment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, ok := findAppointment(hc)
		if !ok {
			return
		}

		text := fmt.Sprintf(
			"❓ Remove appointment <b>#%d</b> from your history?\n\nThe record is deleted for good.",
			a.ID,
		)
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("🗑 Yes, remove it", fmt.Sprintf("appt_remove_yes:%d", a.ID))).
			Row(keyboard.Button("⬅️ Keep it", fmt.Sprintf("appt_view:%d", a.ID))).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show remove confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmRemove (appt_remove_yes:ID) deletes the record and reloads.
func HandleConfirmRemove(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "confirm remove")
			return
		}

		if err := hc.Handler.Appointments.Delete(hc.Ctx, hc.Session.Token, id); err != nil {
			common.HandleError(hc, err, "remove appointment")
			return
		}

		d, err := Reload(hc)
		if err != nil {
			common.HandleError(hc, err, "reload after remove")
			return
		}
		Render(hc, d)
		common.LogAndAnswer(hc, "Appointment removed", "🗑 Removed from history")
	})
}

// HandleTicket (appt_ticket:ID) renders the QR check-in ticket and sends it
// as a photo. Only approved appointments have a ticket.
func HandleTicket(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, ok := findAppointment(hc)
		if !ok {
			return
		}

		if a.Status != model.AppointmentStatusApproved {
			hc.AnswerAlert("🎫 Tickets are only issued for approved appointments")
			return
		}

		png, err := ticket.Render(ticket.Data{
			AppointmentID: a.ID,
			StudentName:   hc.Session.FullName,
			ServiceType:   a.ServiceType,
			Date:          a.AppointmentDate,
			Time:          a.AppointmentTime,
			Urgency:       a.Urgency,
			Status:        a.Status,
		})
		if err != nil {
			common.HandleError(hc, err, "render ticket")
			return
		}

		_, err = hc.Bot.SendPhoto(hc.Ctx, &bot.SendPhotoParams{
			ChatID: hc.ChatID,
			Photo: &models.InputFileUpload{
				Filename: fmt.Sprintf("ticket_%d.png", a.ID),
				Data:     bytes.NewReader(png),
			},
			Caption: fmt.Sprintf(
				"🎫 Check-in ticket for appointment #%d\nShow the QR code at the clinic front desk.",
				a.ID,
			),
		})
		if err != nil {
			common.HandleError(hc, err, "send ticket")
			return
		}

		common.LogAndAnswer(hc, "Ticket sent", "🎫 Ticket sent")
	})
}

// findAppointment resolves the callback's ID against the loaded snapshot and
// answers the user itself when that fails.
func findAppointment(hc *common.HandlerContext) (model.Appointment, bool) {
	id, err := common.ParseIDFromCallback(hc.Callback.Data)
	if err != nil {
		common.HandleError(hc, common.ErrInvalidFormat, "find appointment")
		return model.Appointment{}, false
	}

	d, err := hc.RequireDashboard()
	if err != nil {
		common.HandleError(hc, err, "find appointment")
		return model.Appointment{}, false
	}

	a, ok := d.Store.Find(id)
	if !ok {
		common.HandleError(hc, common.ErrAppointmentNotFound, "find appointment")
		return model.Appointment{}, false
	}
	return a, true
}

package admin

import (
	"context"
	"fmt"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// findAppointment resolves the callback's id suffix against the loaded
// snapshot. Failures are already answered when it returns false.
func findAppointment(hc *common.HandlerContext) (model.Appointment, bool) {
	id, err := common.ParseIDFromCallback(hc.Callback.Data)
	if err != nil {
		common.HandleError(hc, common.ErrInvalidFormat, "admin appointment lookup")
		return model.Appointment{}, false
	}

	d, err := hc.RequireDashboard()
	if err != nil {
		common.HandleError(hc, err, "admin appointment lookup")
		return model.Appointment{}, false
	}

	a, ok := d.Store.Find(id)
	if !ok {
		common.HandleError(hc, common.ErrAppointmentNotFound, "admin appointment lookup")
		return model.Appointment{}, false
	}
	return a, true
}

// HandleViewAppointment (adm_view:ID) shows the full record with the staff
// action buttons its status allows.
func HandleViewAppointment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, ok := findAppointment(hc)
		if !ok {
			return
		}

		text, kb := common.BuildAppointmentDetailScreen(a, hc.Session.Role)
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show appointment detail", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleApprove (adm_approve:ID) approves a pending appointment, then shows
// the record with its fresh backend state.
func HandleApprove(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, ok := findAppointment(hc)
		if !ok {
			return
		}

		if err := hc.Handler.Appointments.Approve(hc.Ctx, hc.Session.Token, a.ID); err != nil {
			common.HandleError(hc, err, "approve appointment")
			return
		}

		hc.Handler.Logger.Info("Appointment approved",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("appointment_id", a.ID))

		d, err := Reload(hc)
		if err != nil {
			common.HandleError(hc, err, "approve appointment")
			return
		}

		if fresh, found := d.Store.Find(a.ID); found {
			text, kb := common.BuildAppointmentDetailScreen(fresh, hc.Session.Role)
			if err := hc.EditMessage(text, kb); err != nil {
				hc.Handler.Logger.Error("Failed to show approved appointment", zap.Error(err))
			}
		} else {
			Render(hc, d)
		}
		hc.Answer("✅ Approved")
	})
}

// HandleRejectPrompt (adm_reject:ID) asks for the mandatory note before the
// rejection is sent. The note arrives through the text dialog.
func HandleRejectPrompt(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, ok := findAppointment(hc)
		if !ok {
			return
		}

		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateRejectNote))
		hc.SetData("appointment_id", a.ID)

		text := fmt.Sprintf(
			"🚫 <b>Reject appointment #%d</b>\n\n"+
				"Send a short note explaining the decision. The student sees it "+
				"on their dashboard, so a rejection never arrives without a reason.",
			a.ID)
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("⬅️ Back", fmt.Sprintf("adm_view:%d", a.ID))).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show reject prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleDelete (adm_delete:ID) asks for confirmation before a record is
// removed for good.
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, ok := findAppointment(hc)
		if !ok {
			return
		}

		text := fmt.Sprintf(
			"🗑 <b>Delete appointment #%d?</b>\n\n"+
				"This removes the record from the clinic entirely, whatever its "+
				"status. The student will no longer see it.",
			a.ID)
		kb := keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons(
				fmt.Sprintf("adm_delete_yes:%d", a.ID),
				fmt.Sprintf("adm_view:%d", a.ID))).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show delete confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmDelete (adm_delete_yes:ID) removes the record and returns to
// the dashboard.
func HandleConfirmDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, ok := findAppointment(hc)
		if !ok {
			return
		}

		if err := hc.Handler.Appointments.Delete(hc.Ctx, hc.Session.Token, a.ID); err != nil {
			common.HandleError(hc, err, "delete appointment")
			return
		}

		hc.Handler.Logger.Info("Appointment deleted",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("appointment_id", a.ID))

		d, err := Reload(hc)
		if err != nil {
			common.HandleError(hc, err, "delete appointment")
			return
		}
		Render(hc, d)
		hc.Answer("🗑 Appointment deleted")
	})
}

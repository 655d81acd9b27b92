// Package student holds the callback handlers behind the student surface:
// the appointment dashboard, the booking dialog and the assistant chat.
package student

import (
	"context"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/view"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Reload fetches a fresh snapshot from the clinic into the chat's dashboard
// session, opening one if needed.
func Reload(hc *common.HandlerContext) (*view.Dashboard, error) {
	appts, err := hc.Handler.Appointments.List(hc.Ctx, hc.Session.Token)
	if err != nil {
		return nil, err
	}

	d, ok := hc.Dashboard()
	if !ok {
		d = hc.Handler.Dashboards.Open(hc.ChatID)
	}
	d.Store.Replace(appts)
	return d, nil
}

// Render redraws the dashboard into the callback's message.
func Render(hc *common.HandlerContext, d *view.Dashboard) {
	text, kb := common.BuildStudentDashboardScreen(d)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to render student dashboard",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err))
		return
	}
	if hc.Message != nil {
		d.MessageID = hc.Message.ID
	}
}

// HandleOpenDashboard (appt_list) re-fetches the list and redraws it. Both
// the refresh button and the menu entry land here.
func HandleOpenDashboard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, err := Reload(hc)
		if err != nil {
			common.HandleError(hc, err, "open student dashboard")
			return
		}
		Render(hc, d)
		hc.Answer("")
	})
}

// HandleShowDashboard (appt_show) redraws from the already loaded snapshot,
// with no network round trip. Filter pickers come back through here.
func HandleShowDashboard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, ok := hc.Dashboard()
		if !ok {
			var err error
			if d, err = Reload(hc); err != nil {
				common.HandleError(hc, err, "show student dashboard")
				return
			}
		}
		Render(hc, d)
		hc.Answer("")
	})
}

// HandlePage (appt_page:N) flips to another page of the filtered list.
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "student page")
			return
		}

		d, err2 := hc.RequireDashboard()
		if err2 != nil {
			common.HandleError(hc, err2, "student page")
			return
		}

		d.Filter.Page = int(page)
		Render(hc, d)
		hc.Answer("")
	})
}

// HandleFilterMenu (appt_filter) opens the status picker.
func HandleFilterMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, err := hc.RequireDashboard()
		if err != nil {
			common.HandleError(hc, err, "student filter menu")
			return
		}

		text, kb := common.BuildStatusPickerScreen(d.Filter.Status, false)
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show status picker", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleStatusPick (appt_status:x) applies a status filter locally and jumps
// back to the first page.
func HandleStatusPick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		status, err := common.ParseSuffixFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "student status filter")
			return
		}

		d, err2 := hc.RequireDashboard()
		if err2 != nil {
			common.HandleError(hc, err2, "student status filter")
			return
		}

		d.Filter.Status = status
		d.Filter.Page = 0
		Render(hc, d)
		hc.Answer("🔍 Filter applied")
	})
}

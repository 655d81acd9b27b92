// Package admin holds the callback handlers behind the clinic staff surface:
// the admin dashboard with its filters, appointment actions, the QR scanner
// mode and account management.
package admin

import (
	"context"
	"fmt"
	"html"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/campuscare/clinic_bot/internal/view"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Reload fetches a fresh clinic-wide snapshot into the chat's dashboard
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

// Render redraws the admin dashboard into the callback's message.
func Render(hc *common.HandlerContext, d *view.Dashboard) {
	text, kb := common.BuildAdminDashboardScreen(d)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to render admin dashboard",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err))
		return
	}
	if hc.Message != nil {
		d.MessageID = hc.Message.ID
	}
}

// HandleOpenDashboard (adm_list) re-fetches the list and redraws it.
func HandleOpenDashboard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, err := Reload(hc)
		if err != nil {
			common.HandleError(hc, err, "open admin dashboard")
			return
		}
		Render(hc, d)
		hc.Answer("")
	})
}

// HandleShowDashboard (adm_show) redraws from the loaded snapshot without a
// network round trip. Filter pickers come back through here.
func HandleShowDashboard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, ok := hc.Dashboard()
		if !ok {
			var err error
			if d, err = Reload(hc); err != nil {
				common.HandleError(hc, err, "show admin dashboard")
				return
			}
		}
		Render(hc, d)
		hc.Answer("")
	})
}

// HandlePage (adm_page:N) flips to another page of the filtered list.
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "admin page")
			return
		}

		d, err2 := hc.RequireDashboard()
		if err2 != nil {
			common.HandleError(hc, err2, "admin page")
			return
		}

		d.Filter.Page = int(page)
		Render(hc, d)
		hc.Answer("")
	})
}

// HandleFilterMenu (adm_filter) opens the status picker.
func HandleFilterMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, err := hc.RequireDashboard()
		if err != nil {
			common.HandleError(hc, err, "admin filter menu")
			return
		}

		text, kb := common.BuildStatusPickerScreen(d.Filter.Status, true)
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show status picker", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleStatusPick (adm_status:x) applies a status filter locally and jumps
// back to the first page.
func HandleStatusPick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		status, err := common.ParseSuffixFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "admin status filter")
			return
		}

		d, err2 := hc.RequireDashboard()
		if err2 != nil {
			common.HandleError(hc, err2, "admin status filter")
			return
		}

		d.Filter.Status = status
		d.Filter.Page = 0
		Render(hc, d)
		hc.Answer("🔍 Filter applied")
	})
}

// HandleCategoryMenu (adm_cat_menu) opens the service and urgency picker.
func HandleCategoryMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, err := hc.RequireDashboard()
		if err != nil {
			common.HandleError(hc, err, "admin category menu")
			return
		}

		text, kb := common.BuildCategoryPickerScreen(d.Filter.Category)
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show category picker", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleCategoryPick (adm_cat:x) applies a category filter locally.
func HandleCategoryPick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		cat, err := common.ParseSuffixFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "admin category filter")
			return
		}

		d, err2 := hc.RequireDashboard()
		if err2 != nil {
			common.HandleError(hc, err2, "admin category filter")
			return
		}

		d.Filter.Category = view.Category(cat)
		d.Filter.Page = 0
		Render(hc, d)
		hc.Answer("🔍 Filter applied")
	})
}

// HandleSearchPrompt (adm_search) asks for a student name to filter by. The
// typed term arrives through the text dialog.
func HandleSearchPrompt(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, err := hc.RequireDashboard()
		if err != nil {
			common.HandleError(hc, err, "admin search prompt")
			return
		}

		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateSearchName))

		text := "🔎 <b>Search by student name</b>\n\n" +
			"Send part of a student's name. Matching ignores letter case."
		if d.Filter.Search != "" {
			text += fmt.Sprintf("\n\nCurrent search: <b>%s</b>", html.EscapeString(d.Filter.Search))
		}

		kb := keyboard.NewBuilder()
		if d.Filter.Search != "" {
			kb.Row(keyboard.Button("✖ Clear search", "adm_search_clear"))
		}
		kb.Row(keyboard.BackButton("adm_show"))

		if err := hc.EditMessage(text, kb.Build()); err != nil {
			hc.Handler.Logger.Error("Failed to show search prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleSearchClear (adm_search_clear) drops the name filter.
func HandleSearchClear(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, err := hc.RequireDashboard()
		if err != nil {
			common.HandleError(hc, err, "admin search clear")
			return
		}

		hc.ClearState()
		d.Filter.Search = ""
		d.Filter.Page = 0
		Render(hc, d)
		hc.Answer("✖ Search cleared")
	})
}

// HandleClearFilters (adm_clear) resets every filter to the open-dashboard
// default.
func HandleClearFilters(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		d, err := hc.RequireDashboard()
		if err != nil {
			common.HandleError(hc, err, "admin clear filters")
			return
		}

		d.Filter = view.NewFilterState()
		Render(hc, d)
		hc.Answer("♻️ Filters reset")
	})
}

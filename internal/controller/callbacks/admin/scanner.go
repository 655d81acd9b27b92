package admin

import (
	"context"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStartScanner (scan_start) switches the chat into scanner mode. Every
// photo from here on is decoded as a check-in ticket until the admin leaves.
func HandleStartScanner(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateScannerMode))

		text, kb := common.BuildScannerScreen()
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to open scanner", zap.Error(err))
		}
		hc.Answer("📷 Scanner ready")
	})
}

// HandleStopScanner (scan_stop) leaves scanner mode.
func HandleStopScanner(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📋 Appointments", "adm_list")).
			AddMainMenuButton().
			Build()
		if err := hc.EditMessage("📷 Scanner closed.", kb); err != nil {
			hc.Handler.Logger.Error("Failed to close scanner", zap.Error(err))
		}
		hc.Answer("")
	})
}

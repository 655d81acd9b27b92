package admin

import (
	"context"
	"fmt"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// renderUsers fetches the account list and redraws it into the callback's
// message.
func renderUsers(hc *common.HandlerContext) {
	users, err := hc.Handler.Admin.Users(hc.Ctx, hc.Session.Token)
	if err != nil {
		common.HandleError(hc, err, "list accounts")
		return
	}

	text, kb := common.BuildUsersScreen(users, hc.Session.UserID)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to render account list", zap.Error(err))
	}
}

// HandleUsers (usr_list) shows every backend account. Head admin only. It
// also serves as the cancel target of the account dialog, so any dialog state
// is dropped on entry.
func HandleUsers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSuperAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		renderUsers(hc)
		hc.Answer("")
	})
}

// HandleCreateUserStart (usr_create) opens the account creation dialog at the
// name step. Name, email and password arrive through the text dialog; the
// role is picked with buttons at the end.
func HandleCreateUserStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSuperAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateCreateUserName))

		text := "➕ <b>New account</b> (step 1 of 4)\n\n" +
			"Send the person's full name."
		kb := keyboard.NewBuilder().
			Row(keyboard.CancelButton("usr_list")).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to open account dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleRolePick (usr_role:x) closes the account creation dialog by picking
// the role and submitting the collected details.
func HandleRolePick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSuperAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if hc.Handler.StateManager.GetState(hc.TelegramID) != callbacktypes.UserState(state.StateCreateUserRole) {
			hc.AnswerAlert("❌ This dialog is no longer active. Start again from the account list.")
			return
		}

		role, err := common.ParseSuffixFromCallback(callback.Data)
		if err != nil || (role != "student" && role != "admin" && role != "super_admin") {
			common.HandleError(hc, common.ErrInvalidFormat, "account role pick")
			return
		}

		data := hc.Handler.StateManager.GetAllData(hc.TelegramID)
		name, _ := data["name"].(string)
		email, _ := data["email"].(string)
		password, _ := data["password"].(string)

		if name == "" || email == "" || password == "" {
			hc.ClearState()
			hc.AnswerAlert("❌ The account details got lost. Please start again.")
			return
		}

		msg, err := hc.Handler.Admin.CreateUser(hc.Ctx, hc.Session.Token, clinic.CreateUserRequest{
			FullName: name,
			Email:    email,
			Password: password,
			Role:     role,
		})
		if err != nil {
			common.HandleError(hc, err, "create account")
			return
		}

		hc.ClearState()
		hc.Handler.Logger.Info("Account created",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("role", role))

		if msg == "" {
			msg = "account created"
		}
		hc.Answer("✅ " + capitalizeFirst(msg))
		renderUsers(hc)
	})
}

// HandleDeleteUser (usr_delete:ID) asks for confirmation before an account is
// removed.
func HandleDeleteUser(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSuperAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "delete account")
			return
		}

		if id == hc.Session.UserID {
			hc.AnswerAlert("⛔ You cannot delete your own account")
			return
		}

		text := fmt.Sprintf(
			"🗑 <b>Delete account #%d?</b>\n\n"+
				"The person loses access to the clinic immediately. Their "+
				"appointment history stays on record.",
			id)
		kb := keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons(
				fmt.Sprintf("usr_delete_yes:%d", id), "usr_list")).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show account delete confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmDeleteUser (usr_delete_yes:ID) removes the account and returns
// to the list.
func HandleConfirmDeleteUser(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSuperAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "delete account")
			return
		}

		msg, err := hc.Handler.Admin.DeleteUser(hc.Ctx, hc.Session.Token, id)
		if err != nil {
			common.HandleError(hc, err, "delete account")
			return
		}

		hc.Handler.Logger.Info("Account deleted",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("deleted_user_id", id))

		if msg == "" {
			msg = "account deleted"
		}
		hc.Answer("🗑 " + capitalizeFirst(msg))
		renderUsers(hc)
	})
}

// capitalizeFirst uppercases the first byte of backend confirmation phrases,
// which arrive all lowercase.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

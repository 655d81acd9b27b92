package keyboard

import "github.com/go-telegram/bot/models"

// BackButton creates a "Back" button pointing at the given callback.
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Back", callbackData)
}

// MainMenuButton creates the "Main menu" button.
func MainMenuButton() models.InlineKeyboardButton {
	return Button("🏠 Main menu", "main_menu")
}

// CancelButton creates a "Cancel" button.
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancel", callbackData)
}

// ConfirmButton creates a "Confirm" button.
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirm", callbackData)
}

// RefreshButton creates a "Refresh" button.
func RefreshButton(callbackData string) models.InlineKeyboardButton {
	return Button("🔄 Refresh", callbackData)
}

// YesNoButtons creates a single row with Yes/No choices.
func YesNoButtons(yesCallback, noCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			Button("✅ Yes", yesCallback),
			Button("❌ No", noCallback),
		},
	}
}

// ConfirmCancelButtons creates a single row with Confirm/Cancel choices.
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// BackRow creates a row holding only a "Back" button.
func BackRow(callbackData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{BackButton(callbackData)}
}

// AddBackButton appends a "Back" row to the builder.
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// AddMainMenuButton appends a "Main menu" row to the builder.
func (b *Builder) AddMainMenuButton() *Builder {
	return b.Row(MainMenuButton())
}

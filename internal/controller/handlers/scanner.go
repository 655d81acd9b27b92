package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/campuscare/clinic_bot/internal/checkin"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// maxPhotoBytes caps ticket photo downloads. Telegram photos are far smaller.
const maxPhotoBytes = 10 << 20

// HandlePhoto receives photo messages. Outside scanner mode they are ignored.
func (h *Handlers) HandlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || len(update.Message.Photo) == 0 {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) != state.StateScannerMode {
		h.logger.Debug("Photo outside scanner mode, ignoring",
			zap.Int64("telegram_id", telegramID))
		return
	}

	chatID := update.Message.Chat.ID

	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	// Answer busy before downloading so a burst of photos does not queue
	// pointless fetches.
	if h.checkin.ScannerBusy(chatID) {
		h.sendMessage(ctx, b, chatID, "⏳ Still finishing the previous scan. One moment.")
		return
	}

	// Telegram orders photo sizes ascending; the last one is the original.
	photo := update.Message.Photo[len(update.Message.Photo)-1]

	data, err := h.downloadFile(ctx, b, photo.FileID)
	if err != nil {
		h.logger.Error("Failed to download scan photo",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "📡 Could not download the photo from Telegram. Try again")
		return
	}

	result := h.checkin.HandleScan(ctx, chatID, session.Token, data)
	h.sendScanResult(ctx, b, chatID, result)
}

// handleScannerPayloadStep lets an admin type the ticket number instead of
// photographing it, for torn or unreadable tickets.
func (h *Handlers) handleScannerPayloadStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	result := h.checkin.ProcessPayload(ctx, chatID, session.Token, update.Message.Text)
	h.sendScanResult(ctx, b, chatID, result)
}

// sendScanResult tells the admin what one scan did.
func (h *Handlers) sendScanResult(ctx context.Context, b *bot.Bot, chatID int64, result checkin.Result) {
	switch result.Outcome {
	case checkin.OutcomeCompleted:
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("✅ Checked in! Appointment #%d is completed.", result.AppointmentID))
	case checkin.OutcomeAlreadyScanned:
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("⚠️ Appointment #%d was already checked in.", result.AppointmentID))
	case checkin.OutcomeBusy:
		h.sendMessage(ctx, b, chatID, "⏳ Still finishing the previous scan. One moment.")
	case checkin.OutcomeInvalidCode:
		h.sendMessage(ctx, b, chatID,
			"❌ No readable ticket code in that. Send a sharper photo, or type the ticket number.")
	case checkin.OutcomeFailed:
		if result.Detail != "" {
			h.sendError(ctx, b, chatID, fmt.Sprintf("⚠️ Check-in failed: %s", result.Detail))
			return
		}
		h.sendError(ctx, b, chatID, "📡 Check-in failed. The scanner pauses briefly, then you can retry")
	}
}

// downloadFile fetches a Telegram-hosted file by its id.
func (h *Handlers) downloadFile(ctx context.Context, b *bot.Bot, fileID string) ([]byte, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.FileDownloadLink(file), nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("read file body: %w", err)
	}
	return data, nil
}

package callbacks

import (
	"context"
	"strings"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/admin"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/auth"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/student"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Navigation callbacks
const (
	MainMenu = "main_menu"
	Noop     = "noop"
)

// Auth callbacks
const (
	AuthLogin     = "auth_login"
	AuthRegister  = "auth_register"
	AuthLogout    = "auth_logout"
	AuthLogoutYes = "auth_logout_yes"
)

// Student dashboard callbacks
const (
	ApptList   = "appt_list"
	ApptShow   = "appt_show"
	ApptFilter = "appt_filter"

	ApptPage      = "appt_page:"       // appt_page:2
	ApptStatus    = "appt_status:"     // appt_status:pending
	ApptView      = "appt_view:"       // appt_view:123
	ApptCancel    = "appt_cancel:"     // appt_cancel:123
	ApptCancelYes = "appt_cancel_yes:" // appt_cancel_yes:123
	ApptRemove    = "appt_remove:"     // appt_remove:123
	ApptRemoveYes = "appt_remove_yes:" // appt_remove_yes:123
	ApptTicket    = "appt_ticket:"     // appt_ticket:123
)

// Booking dialog callbacks
const (
	BookNew     = "book_new"
	BookConfirm = "book_confirm"
	BookCancel  = "book_cancel"

	BookService = "book_svc:"     // book_svc:consultation
	BookDate    = "book_date:"    // book_date:tomorrow
	BookTime    = "book_time:"    // book_time:09:30
	BookUrgency = "book_urgency:" // book_urgency:Urgent
)

// Assistant chat callbacks
const (
	ChatStart = "chat_start"
	ChatStop  = "chat_stop"
	ChatReset = "chat_reset"
)

// Admin dashboard callbacks
const (
	AdmList        = "adm_list"
	AdmShow        = "adm_show"
	AdmFilter      = "adm_filter"
	AdmCatMenu     = "adm_cat_menu"
	AdmSearch      = "adm_search"
	AdmSearchClear = "adm_search_clear"
	AdmClear       = "adm_clear"

	AdmPage      = "adm_page:"       // adm_page:2
	AdmStatus    = "adm_status:"     // adm_status:approved
	AdmCat       = "adm_cat:"        // adm_cat:clearance_urgent
	AdmView      = "adm_view:"       // adm_view:123
	AdmApprove   = "adm_approve:"    // adm_approve:123
	AdmReject    = "adm_reject:"     // adm_reject:123
	AdmDelete    = "adm_delete:"     // adm_delete:123
	AdmDeleteYes = "adm_delete_yes:" // adm_delete_yes:123
)

// Scanner callbacks
const (
	ScanStart = "scan_start"
	ScanStop  = "scan_stop"
)

// Account management callbacks (head admin only)
const (
	UsrList   = "usr_list"
	UsrCreate = "usr_create"

	UsrRole      = "usr_role:"       // usr_role:admin
	UsrDelete    = "usr_delete:"     // usr_delete:123
	UsrDeleteYes = "usr_delete_yes:" // usr_delete_yes:123
)

// Route dispatches a callback query to its handler by the data prefix.
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Navigation =====
	case data == MainMenu:
		common.HandleMainMenu(ctx, b, callback, h)
	case data == Noop:
		common.HandleNoop(ctx, b, callback, h)

	// ===== Auth =====
	case data == AuthLogin:
		auth.HandleLoginStart(ctx, b, callback, h)
	case data == AuthRegister:
		auth.HandleRegisterStart(ctx, b, callback, h)
	case data == AuthLogout:
		auth.HandleLogout(ctx, b, callback, h)
	case data == AuthLogoutYes:
		auth.HandleLogoutConfirm(ctx, b, callback, h)

	// ===== Student: dashboard =====
	case data == ApptList:
		student.HandleOpenDashboard(ctx, b, callback, h)
	case data == ApptShow:
		student.HandleShowDashboard(ctx, b, callback, h)
	case data == ApptFilter:
		student.HandleFilterMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, ApptPage):
		student.HandlePage(ctx, b, callback, h)
	case strings.HasPrefix(data, ApptStatus):
		student.HandleStatusPick(ctx, b, callback, h)
	case strings.HasPrefix(data, ApptView):
		student.HandleViewAppointment(ctx, b, callback, h)
	case strings.HasPrefix(data, ApptCancelYes):
		student.HandleConfirmCancel(ctx, b, callback, h)
	case strings.HasPrefix(data, ApptCancel):
		student.HandleCancelAppointment(ctx, b, callback, h)
	case strings.HasPrefix(data, ApptRemoveYes):
		student.HandleConfirmRemove(ctx, b, callback, h)
	case strings.HasPrefix(data, ApptRemove):
		student.HandleRemoveAppointment(ctx, b, callback, h)
	case strings.HasPrefix(data, ApptTicket):
		student.HandleTicket(ctx, b, callback, h)

	// ===== Student: booking dialog =====
	case data == BookNew:
		student.HandleStartBooking(ctx, b, callback, h)
	case data == BookConfirm:
		student.HandleConfirmBooking(ctx, b, callback, h)
	case data == BookCancel:
		student.HandleCancelBookingDialog(ctx, b, callback, h)
	case strings.HasPrefix(data, BookService):
		student.HandleServicePick(ctx, b, callback, h)
	case strings.HasPrefix(data, BookDate):
		student.HandleDatePick(ctx, b, callback, h)
	case strings.HasPrefix(data, BookTime):
		student.HandleTimePick(ctx, b, callback, h)
	case strings.HasPrefix(data, BookUrgency):
		student.HandleUrgencyPick(ctx, b, callback, h)

	// ===== Student: assistant chat =====
	case data == ChatStart:
		student.HandleStartChat(ctx, b, callback, h)
	case data == ChatStop:
		student.HandleStopChat(ctx, b, callback, h)
	case data == ChatReset:
		student.HandleResetChat(ctx, b, callback, h)

	// ===== Admin: dashboard =====
	case data == AdmList:
		admin.HandleOpenDashboard(ctx, b, callback, h)
	case data == AdmShow:
		admin.HandleShowDashboard(ctx, b, callback, h)
	case data == AdmFilter:
		admin.HandleFilterMenu(ctx, b, callback, h)
	case data == AdmCatMenu:
		admin.HandleCategoryMenu(ctx, b, callback, h)
	case data == AdmSearch:
		admin.HandleSearchPrompt(ctx, b, callback, h)
	case data == AdmSearchClear:
		admin.HandleSearchClear(ctx, b, callback, h)
	case data == AdmClear:
		admin.HandleClearFilters(ctx, b, callback, h)
	case strings.HasPrefix(data, AdmPage):
		admin.HandlePage(ctx, b, callback, h)
	case strings.HasPrefix(data, AdmStatus):
		admin.HandleStatusPick(ctx, b, callback, h)
	case strings.HasPrefix(data, AdmCat):
		admin.HandleCategoryPick(ctx, b, callback, h)
	case strings.HasPrefix(data, AdmView):
		admin.HandleViewAppointment(ctx, b, callback, h)
	case strings.HasPrefix(data, AdmApprove):
		admin.HandleApprove(ctx, b, callback, h)
	case strings.HasPrefix(data, AdmReject):
		admin.HandleRejectPrompt(ctx, b, callback, h)
	case strings.HasPrefix(data, AdmDeleteYes):
		admin.HandleConfirmDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, AdmDelete):
		admin.HandleDelete(ctx, b, callback, h)

	// ===== Admin: scanner =====
	case data == ScanStart:
		admin.HandleStartScanner(ctx, b, callback, h)
	case data == ScanStop:
		admin.HandleStopScanner(ctx, b, callback, h)

	// ===== Head admin: accounts =====
	case data == UsrList:
		admin.HandleUsers(ctx, b, callback, h)
	case data == UsrCreate:
		admin.HandleCreateUserStart(ctx, b, callback, h)
	case strings.HasPrefix(data, UsrRole):
		admin.HandleRolePick(ctx, b, callback, h)
	case strings.HasPrefix(data, UsrDeleteYes):
		admin.HandleConfirmDeleteUser(ctx, b, callback, h)
	case strings.HasPrefix(data, UsrDelete):
		admin.HandleDeleteUser(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("telegram_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown command")
	}
}

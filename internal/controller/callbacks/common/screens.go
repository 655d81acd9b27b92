package common

import (
	"fmt"
	"html"
	"strings"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/campuscare/clinic_bot/internal/view"
	"github.com/go-telegram/bot/models"
)

// AppointmentsPerPage is how many entries a dashboard page shows.
const AppointmentsPerPage = 6

// statusFilterOptions is the order the status picker offers.
var statusFilterOptions = []struct {
	Value string
	Label string
}{
	{view.StatusAll, "🗂 All"},
	{string(model.AppointmentStatusPending), "⏳ Pending"},
	{string(model.AppointmentStatusApproved), "✅ Approved"},
	{string(model.AppointmentStatusRejected), "🚫 Rejected"},
	{string(model.AppointmentStatusCanceled), "❌ Canceled"},
	{string(model.AppointmentStatusCompleted), "✔️ Completed"},
}

var categoryLabels = map[view.Category]string{
	view.CategoryAll:                "All",
	view.CategoryClearanceUrgent:    "Clearance · urgent",
	view.CategoryConsultationUrgent: "Consultation · urgent",
	view.CategoryClearanceNormal:    "Clearance · normal",
	view.CategoryConsultationNormal: "Consultation · normal",
}

// CategoryLabel returns the human wording for a category selector value.
func CategoryLabel(c view.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func statusFilterLabel(value string) string {
	for _, opt := range statusFilterOptions {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// BuildWelcomeScreen greets a chat with no clinic session.
func BuildWelcomeScreen() (string, *models.InlineKeyboardMarkup) {
	text := "🏥 <b>CampusCare Clinic</b>\n\n" +
		"Book clinic appointments, track their status and check in with a QR " +
		"ticket, right from Telegram.\n\n" +
		"Log in with your clinic account, or register if you are new here."

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔑 Log in", "auth_login")).
		Row(keyboard.Button("🆕 Register", "auth_register")).
		Build()

	return text, kb
}

// BuildLoginPromptScreen nudges an unauthenticated chat toward /login.
func BuildLoginPromptScreen() (string, *models.InlineKeyboardMarkup) {
	text := "🔒 You need to log in first.\n\n" +
		"Use /login with your clinic account, or /register to create one."

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔑 Log in", "auth_login")).
		Row(keyboard.Button("🆕 Register", "auth_register")).
		Build()

	return text, kb
}

// BuildMainMenuScreen renders the role-gated main menu.
func BuildMainMenuScreen(session *model.Session) (string, *models.InlineKeyboardMarkup) {
	role := formatting.GetRoleDisplay(session.Role)

	text := fmt.Sprintf(
		"🏥 <b>CampusCare Clinic</b>\n\n"+
			"%s %s — <b>%s</b>\n\n"+
			"What would you like to do?",
		role.Emoji, role.Text, html.EscapeString(session.FullName),
	)

	b := keyboard.NewBuilder()
	if session.Role.IsAdmin() {
		b.Row(keyboard.Button("📊 Appointment dashboard", "adm_list"))
		b.Row(keyboard.Button("📷 QR check-in scanner", "scan_start"))
		if session.Role == model.RoleSuperAdmin {
			b.Row(keyboard.Button("👥 Manage accounts", "usr_list"))
		}
	} else {
		b.Row(keyboard.Button("📅 My appointments", "appt_list"))
		b.Row(keyboard.Button("➕ Book appointment", "book_new"))
		b.Row(keyboard.Button("💬 Booking assistant", "chat_start"))
	}
	b.Row(keyboard.Button("🚪 Log out", "auth_logout"))

	return text, b.Build()
}

// BuildStudentDashboardScreen renders a student's appointment list from the
// chat's dashboard session. The filter's page is clamped in place when the
// filtered list shrank under it.
func BuildStudentDashboardScreen(d *view.Dashboard) (string, *models.InlineKeyboardMarkup) {
	filtered := view.ApplyStudent(d.Store.Appointments, d.Filter.Status)
	totalPages := pageCount(len(filtered))
	if d.Filter.Page >= totalPages {
		d.Filter.Page = totalPages - 1
	}
	page := view.Paginate(filtered, d.Filter.Page, AppointmentsPerPage)

	var text strings.Builder
	text.WriteString("📅 <b>My appointments</b>\n")
	fmt.Fprintf(&text, "🔍 Status: %s · showing %d of %d\n\n",
		statusFilterLabel(d.Filter.Status), len(page), len(filtered))

	if len(filtered) == 0 {
		if len(d.Store.Appointments) == 0 {
			text.WriteString("You have no appointments yet. Book your first one! 👇")
		} else {
			text.WriteString("Nothing matches this filter.")
		}
	}

	b := keyboard.NewBuilder()
	for _, a := range page {
		text.WriteString(formatting.AppointmentLine(a, false))
		text.WriteString("\n\n")
		b.Row(keyboard.Button(appointmentButtonLabel(a, false), fmt.Sprintf("appt_view:%d", a.ID)))
	}

	b.AddPagination("appt_page:", d.Filter.Page, totalPages)
	b.Row(
		keyboard.Button("🔍 Filter status", "appt_filter"),
		keyboard.RefreshButton("appt_list"),
	)
	b.Row(keyboard.Button("➕ Book appointment", "book_new"))
	b.AddMainMenuButton()

	return text.String(), b.Build()
}

// BuildAdminDashboardScreen renders the staff dashboard: stats over the full
// snapshot, then the filtered and sorted queue.
func BuildAdminDashboardScreen(d *view.Dashboard) (string, *models.InlineKeyboardMarkup) {
	stats := view.Collect(d.Store.Appointments)
	filtered := view.ApplyAdmin(d.Store.Appointments, d.Filter)
	totalPages := pageCount(len(filtered))
	if d.Filter.Page >= totalPages {
		d.Filter.Page = totalPages - 1
	}
	page := view.Paginate(filtered, d.Filter.Page, AppointmentsPerPage)

	var text strings.Builder
	text.WriteString("🏥 <b>Clinic dashboard</b>\n")
	fmt.Fprintf(&text, "🗂 %d total · ⏳ %d · ✅ %d · 🚫 %d · ❌ %d · ✔️ %d\n",
		stats.Total, stats.Pending, stats.Approved, stats.Rejected, stats.Canceled, stats.Completed)
	fmt.Fprintf(&text, "🔍 %s · %s", statusFilterLabel(d.Filter.Status), CategoryLabel(d.Filter.Category))
	if d.Filter.Search != "" {
		fmt.Fprintf(&text, " · name ~ %q", d.Filter.Search)
	}
	fmt.Fprintf(&text, " · showing %d of %d\n\n", len(page), len(filtered))

	if len(filtered) == 0 {
		text.WriteString("No appointments match the current filters.")
	}

	b := keyboard.NewBuilder()
	for _, a := range page {
		text.WriteString(formatting.AppointmentLine(a, true))
		text.WriteString("\n\n")
		b.Row(keyboard.Button(appointmentButtonLabel(a, true), fmt.Sprintf("adm_view:%d", a.ID)))
	}

	b.AddPagination("adm_page:", d.Filter.Page, totalPages)
	b.Row(
		keyboard.Button("🔍 Status", "adm_filter"),
		keyboard.Button("🗂 Category", "adm_cat_menu"),
	)
	searchLabel := "👤 Search name"
	if d.Filter.Search != "" {
		searchLabel = fmt.Sprintf("👤 Search: %s ✖", truncate(d.Filter.Search, 12))
	}
	b.Row(
		keyboard.Button(searchLabel, "adm_search"),
		keyboard.Button("♻️ Reset filters", "adm_clear"),
	)
	b.Row(
		keyboard.RefreshButton("adm_list"),
		keyboard.Button("📷 Scanner", "scan_start"),
	)
	b.AddMainMenuButton()

	return text.String(), b.Build()
}

// BuildStatusPickerScreen lists the status filter options. Used by both
// dashboards; back leads to a local re-render, not a re-fetch.
func BuildStatusPickerScreen(current string, admin bool) (string, *models.InlineKeyboardMarkup) {
	prefix, back := "appt_status:", "appt_show"
	if admin {
		prefix, back = "adm_status:", "adm_show"
	}

	text := "🔍 <b>Filter by status</b>\n\nOnly matching appointments stay visible. " +
		"The list itself is not reloaded."

	b := keyboard.NewBuilder()
	for _, opt := range statusFilterOptions {
		label := opt.Label
		if opt.Value == current {
			label += " ◂"
		}
		b.Row(keyboard.Button(label, prefix+opt.Value))
	}
	b.AddBackButton(back)

	return text, b.Build()
}

// BuildCategoryPickerScreen lists the admin service+urgency categories.
func BuildCategoryPickerScreen(current view.Category) (string, *models.InlineKeyboardMarkup) {
	text := "🗂 <b>Filter by category</b>\n\nA category pairs a service keyword with " +
		"an urgency tier. Appointments with unrecognized urgency values only appear " +
		"under All."

	order := []view.Category{
		view.CategoryAll,
		view.CategoryClearanceUrgent,
		view.CategoryConsultationUrgent,
		view.CategoryClearanceNormal,
		view.CategoryConsultationNormal,
	}

	b := keyboard.NewBuilder()
	for _, c := range order {
		label := CategoryLabel(c)
		if c == current {
			label += " ◂"
		}
		b.Row(keyboard.Button(label, "adm_cat:"+string(c)))
	}
	b.AddBackButton("adm_show")

	return text, b.Build()
}

// BuildAppointmentDetailScreen renders one appointment with the action rows
// its status allows for the viewer's role.
func BuildAppointmentDetailScreen(a model.Appointment, role model.Role) (string, *models.InlineKeyboardMarkup) {
	admin := role.IsAdmin()
	text := formatting.AppointmentDetail(a, admin)

	b := keyboard.NewBuilder()
	if admin {
		for _, action := range view.AdminActions(a.Status) {
			switch action {
			case view.ActionApprove:
				b.Row(keyboard.Button("✅ Approve", fmt.Sprintf("adm_approve:%d", a.ID)))
			case view.ActionReject:
				b.Row(keyboard.Button("🚫 Reject with note", fmt.Sprintf("adm_reject:%d", a.ID)))
			case view.ActionDelete:
				b.Row(keyboard.Button("🗑 Delete record", fmt.Sprintf("adm_delete:%d", a.ID)))
			}
			// ActionView is this screen
		}
		b.AddBackButton("adm_show")
	} else {
		for _, action := range view.StudentActions(a.Status) {
			switch action {
			case view.ActionTicket:
				b.Row(keyboard.Button("🎫 Check-in ticket", fmt.Sprintf("appt_ticket:%d", a.ID)))
			case view.ActionCancel:
				b.Row(keyboard.Button("❌ Cancel appointment", fmt.Sprintf("appt_cancel:%d", a.ID)))
			case view.ActionRemove:
				b.Row(keyboard.Button("🗑 Remove from history", fmt.Sprintf("appt_remove:%d", a.ID)))
			}
		}
		b.AddBackButton("appt_show")
	}

	return text, b.Build()
}

// BuildUsersScreen renders the account list for the head administrator. The
// super admin's own row gets no delete button; the backend refuses
// self-deletion anyway.
func BuildUsersScreen(users []model.User, selfUserID int64) (string, *models.InlineKeyboardMarkup) {
	var text strings.Builder
	fmt.Fprintf(&text, "👥 <b>Accounts</b> (%d)\n\n", len(users))

	b := keyboard.NewBuilder()
	for _, u := range users {
		role := formatting.GetRoleDisplay(u.Role)
		fmt.Fprintf(&text, "%s <b>%s</b> · %s\n      %s #%d\n\n",
			role.Emoji, html.EscapeString(u.FullName), html.EscapeString(u.Email), role.Text, u.ID)
		if u.ID != selfUserID {
			b.Row(keyboard.Button(
				fmt.Sprintf("🗑 %s", truncate(u.FullName, 24)),
				fmt.Sprintf("usr_delete:%d", u.ID),
			))
		}
	}

	b.Row(keyboard.Button("➕ Create account", "usr_create"))
	b.Row(keyboard.RefreshButton("usr_list"))
	b.AddMainMenuButton()

	return text.String(), b.Build()
}

// BuildScannerScreen explains scanner mode.
func BuildScannerScreen() (string, *models.InlineKeyboardMarkup) {
	text := "📷 <b>QR check-in scanner</b>\n\n" +
		"Send me a photo of a student's check-in ticket and I will mark the " +
		"appointment as completed.\n\n" +
		"One ticket at a time: while a scan is processing, new photos are put off " +
		"for a moment."

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🛑 Stop scanning", "scan_stop")).
		Build()

	return text, kb
}

// BuildAssistantScreen introduces the conversational booking assistant.
func BuildAssistantScreen() (string, *models.InlineKeyboardMarkup) {
	text := "💬 <b>Booking assistant</b>\n\n" +
		"Tell me what you need in plain words, for example:\n" +
		"<i>“I have a bad toothache, can I see someone tomorrow morning?”</i>\n\n" +
		"I can book Medical Consultations and Medical Clearances for you. " +
		"Send /cancel or tap the button below to leave the chat."

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🛑 End chat", "chat_stop")).
		Row(keyboard.Button("♻️ New conversation", "chat_reset")).
		Build()

	return text, kb
}

func appointmentButtonLabel(a model.Appointment, withStudent bool) string {
	display := formatting.GetStatusDisplay(a.Status)
	who := a.ServiceType
	if withStudent && a.StudentName != "" {
		who = a.StudentName
	}
	return fmt.Sprintf("%s #%d · %s", display.Emoji, a.ID, truncate(who, 22))
}

func pageCount(n int) int {
	pages := (n + AppointmentsPerPage - 1) / AppointmentsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

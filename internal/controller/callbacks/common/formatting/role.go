package formatting

import "github.com/campuscare/clinic_bot/internal/model"

var roleDisplays = map[model.Role]StatusDisplay{
	model.RoleStudent:    {"🎓", "Student"},
	model.RoleAdmin:      {"🧑‍⚕️", "Clinic admin"},
	model.RoleSuperAdmin: {"👑", "Head admin"},
}

// GetRoleDisplay returns the emoji and label for an account role.
func GetRoleDisplay(role model.Role) StatusDisplay {
	if display, ok := roleDisplays[role]; ok {
		return display
	}
	return StatusDisplay{"❓", titleCase(string(role))}
}

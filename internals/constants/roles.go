package constants

import "fmt"

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "Only administrators can access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleFaculty,
		RoleAdmin,
	}

	// roles a visitor may pick on the registration form
	SelfAssignableRoles = []string{
		RoleStudent,
		RoleFaculty,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

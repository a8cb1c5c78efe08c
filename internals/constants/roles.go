package constants

import "fmt"

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

// Template pesan error role
const (
	ErrOnlyInstructorsCanAccess = "❌ Hanya instructor yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess    = "❌ Hanya student yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorInstructor(feature string) string {
	return fmt.Sprintf(ErrOnlyInstructorsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleInstructor,
	}

	InstructorOnly = []string{
		RoleInstructor,
	}

	StudentOnly = []string{
		RoleStudent,
	}
)

package constants

const (
	Superadmin = "superadmin"
	Admin      = "admin"
	Creator    = "creator"
	Backer     = "backer"
)

// ValidRoles is the set of allowed DB enum values for user role.
var ValidRoles = []string{Backer, Creator, Admin, Superadmin}

// IsValidRole returns true if role is one of the allowed enum values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

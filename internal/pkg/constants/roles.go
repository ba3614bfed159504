package constants

const (
	Planner      = "planner"
	WeddingAdmin = "wedding_admin"
)

// ValidRoles is the set of allowed values for Users.role.
var ValidRoles = []string{WeddingAdmin, Planner}

// IsValidRole returns true if role is one of the allowed values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

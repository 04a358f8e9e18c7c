package models

// Predefined role codes. These are immutable reference data created at startup.
const (
	RoleAdmin  = "ADMIN"
	RoleFarmer = "FARMER"
	RoleBuyer  = "BUYER"
)

// rolePriority fixes the tie-break order when a user holds multiple roles.
// ADMIN wins over FARMER; any other role only matters when neither is present.
var rolePriority = []string{RoleAdmin, RoleFarmer}

// Role represents an assignable role
type Role struct {
	Base
	Code        string `gorm:"uniqueIndex;not null" json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PrimaryRole determines the single role used for redirects and authorization
// display. ADMIN takes precedence over FARMER; otherwise the first assigned
// role is chosen. Returns "" for an empty role set.
func PrimaryRole(roles []Role) string {
	for _, preferred := range rolePriority {
		for _, role := range roles {
			if role.Code == preferred {
				return preferred
			}
		}
	}
	if len(roles) > 0 {
		return roles[0].Code
	}
	return ""
}

// RedirectPath maps a primary role to the post-login redirect hint.
func RedirectPath(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleFarmer:
		return "/farmer"
	default:
		return "/"
	}
}

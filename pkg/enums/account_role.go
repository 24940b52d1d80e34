package enums

import "fmt"

// AccountRole identifies what a user can do on the platform. Roles are
// assigned at registration and never change afterward.
type AccountRole string

const (
	AccountRoleAdmin      AccountRole = "admin"
	AccountRoleSponsor    AccountRole = "sponsor"
	AccountRoleInfluencer AccountRole = "influencer"
)

var validAccountRoles = []AccountRole{
	AccountRoleAdmin,
	AccountRoleSponsor,
	AccountRoleInfluencer,
}

// String implements fmt.Stringer.
func (r AccountRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known AccountRole.
func (r AccountRole) IsValid() bool {
	for _, candidate := range validAccountRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseAccountRole converts raw input into an AccountRole.
func ParseAccountRole(value string) (AccountRole, error) {
	for _, candidate := range validAccountRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid account role %q", value)
}

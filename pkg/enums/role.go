package enums

import "fmt"

// UserRole separates shoppers from pharmacy staff.
type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRolePharmacist UserRole = "pharmacist"
)

var validUserRoles = []UserRole{
	UserRoleUser,
	UserRolePharmacist,
}

// IsValid reports whether the value matches the canonical role enum.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// String returns the wire value.
func (r UserRole) String() string {
	return string(r)
}

// ParseUserRole converts the raw string to UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

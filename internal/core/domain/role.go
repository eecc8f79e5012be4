package domain

import (
	"errors"
	"fmt"
)

// UserRole classifies a user's function within the application. The set is
// closed: only the constants below are valid.
type UserRole string

const (
	RoleDoctor       UserRole = "doctor"
	RoleNutritionist UserRole = "nutritionist"
	RoleYoga         UserRole = "yoga"
	RoleTherapist    UserRole = "therapist"
	RoleFoodPartner  UserRole = "food_partner"
	RolePatient      UserRole = "patient"
)

// RoleCategory groups roles by the kind of service they provide.
type RoleCategory string

const (
	CategoryClinical    RoleCategory = "clinical"
	CategoryFoodService RoleCategory = "food_service"
	CategoryPatient     RoleCategory = "patient"
)

var ErrInvalidRole = errors.New("invalid role")

// Roles returns every valid role in declaration order.
func Roles() []UserRole {
	return []UserRole{
		RoleDoctor,
		RoleNutritionist,
		RoleYoga,
		RoleTherapist,
		RoleFoodPartner,
		RolePatient,
	}
}

// ParseUserRole accepts exactly one of the six role tags. Matching is
// case-sensitive and does not trim whitespace.
func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of the enumerated roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleDoctor, RoleNutritionist, RoleYoga, RoleTherapist, RoleFoodPartner, RolePatient:
		return true
	}
	return false
}

func (r UserRole) String() string { return string(r) }

// Category maps the role to its service category. It panics on an invalid
// role; values reaching it have already been parsed.
func (r UserRole) Category() RoleCategory {
	switch r {
	case RoleDoctor, RoleNutritionist, RoleYoga, RoleTherapist:
		return CategoryClinical
	case RoleFoodPartner:
		return CategoryFoodService
	case RolePatient:
		return CategoryPatient
	}
	panic(fmt.Sprintf("domain: unhandled role %q", string(r)))
}

// UnmarshalText makes JSON and env decoding reject unknown roles.
func (r *UserRole) UnmarshalText(text []byte) error {
	parsed, err := ParseUserRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

package actor

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Role is the closed set of portal roles. Each amendment action is legal for
// exactly one role; the mapping lives in the capability policy.
type Role int

const (
	// UnknownRole catches uninitialized values.
	UnknownRole Role = iota
	Client
	Vendor
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Client:      "client",
		Vendor:      "vendor",
		Admin:       "admin",
	}
}

// RoleFromString parses the role claim carried by the identity token.
func RoleFromString(s string) (Role, error) {
	for r, str := range getRoleStrings() {
		if r != UnknownRole && str == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

func (r Role) Validate() error {
	if r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

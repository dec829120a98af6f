package amendment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Action is a requested transition. Admin and vendor "approve"/"reject" are
// different actions because they are legal from different states.
type Action int

const (
	UnknownAction Action = iota
	Create
	AdminApprove
	AdminReject
	AdminPush
	VendorApprove
	VendorReject
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		UnknownAction: "unknown",
		Create:        "create",
		AdminApprove:  "admin_approve",
		AdminReject:   "admin_reject",
		AdminPush:     "admin_push",
		VendorApprove: "vendor_approve",
		VendorReject:  "vendor_reject",
	}
}

// AllActions lists every valid action in declaration order.
func AllActions() []Action {
	return []Action{Create, AdminApprove, AdminReject, AdminPush, VendorApprove, VendorReject}
}

func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

func (a Action) Validate() error {
	if a == UnknownAction {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// ActionFromString parses the persisted action name (as written to history).
func ActionFromString(s string) (Action, error) {
	for _, a := range AllActions() {
		if a.String() == s {
			return a, nil
		}
	}
	return UnknownAction, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", s))
}

// AdminActionFromString maps an admin decision ("approve", "reject", "push").
func AdminActionFromString(s string) (Action, error) {
	switch s {
	case "approve":
		return AdminApprove, nil
	case "reject":
		return AdminReject, nil
	case "push":
		return AdminPush, nil
	default:
		return UnknownAction, errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%q is not one of approve, reject, push", s))
	}
}

// VendorActionFromString maps a vendor response ("approve", "reject").
func VendorActionFromString(s string) (Action, error) {
	switch s {
	case "approve":
		return VendorApprove, nil
	case "reject":
		return VendorReject, nil
	default:
		return UnknownAction, errs.NewValueIsInvalidErrorWithCause(
			"response", fmt.Errorf("%q is not one of approve, reject", s))
	}
}

// IsAdminDecision reports whether a is one of the admin actions.
func (a Action) IsAdminDecision() bool {
	return a == AdminApprove || a == AdminReject || a == AdminPush
}

// IsVendorResponse reports whether a is one of the vendor actions.
func (a Action) IsVendorResponse() bool {
	return a == VendorApprove || a == VendorReject
}

package amendment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status is the position of an amendment in the negotiation protocol.
//
// State transitions:
//
//	(none) --create--> requested --admin_approve--> admin_review --admin_push--> client_review
//	                       |                                                      |      |
//	                       +--admin_reject--> rejected <------vendor_reject-------+      |
//	                                                                     vendor_approve --> accepted
//
// accepted and rejected are terminal.
type Status int

const (
	// Unknown (0) helps catch uninitialized values; it is also the "from"
	// status of a create entry in the history.
	Unknown Status = iota
	Requested
	AdminReview
	ClientReview
	Accepted
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "unknown",
		Requested:    "requested",
		AdminReview:  "admin_review",
		ClientReview: "client_review",
		Accepted:     "accepted",
		Rejected:     "rejected",
	}
}

// transitions is the legal (status, action) -> status table. Anything not
// listed is an invalid transition.
func transitions() map[Status]map[Action]Status {
	return map[Status]map[Action]Status{
		Unknown: {
			Create: Requested,
		},
		Requested: {
			AdminApprove: AdminReview,
			AdminReject:  Rejected,
		},
		AdminReview: {
			AdminPush: ClientReview,
		},
		ClientReview: {
			VendorApprove: Accepted,
			VendorReject:  Rejected,
		},
	}
}

// AllStatuses lists the five protocol statuses.
func AllStatuses() []Status {
	return []Status{Requested, AdminReview, ClientReview, Accepted, Rejected}
}

// StatusFromString parses the persisted/protocol name of a status.
func StatusFromString(s string) (Status, error) {
	for _, st := range AllStatuses() {
		if st.String() == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate accepts only the five protocol statuses.
func (s Status) Validate() error {
	if s < Requested || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Accepted || s == Rejected
}

// Apply returns the status reached by performing action from s.
// It returns an InvalidTransitionError when the table has no such row.
//
// Example:
//
//	next, err := amendment.Requested.Apply(amendment.AdminApprove) // AdminReview, nil
//	_, err = amendment.Accepted.Apply(amendment.AdminPush)          // invalid transition
func (s Status) Apply(action Action) (Status, error) {
	if next, ok := transitions()[s][action]; ok {
		return next, nil
	}
	return Unknown, errs.NewInvalidTransitionError(s.String(), action.String())
}

// Allows reports whether action is legal from s without applying it.
func (s Status) Allows(action Action) bool {
	_, ok := transitions()[s][action]
	return ok
}

package amendment

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

const (
	// MaxReasonLength bounds both the client's justification and the vendor's note.
	MaxReasonLength = 2000

	// MaxDelayDays bounds the schedule impact a vendor may attach.
	MaxDelayDays = 365
)

var (
	// ErrAmendmentIsNotConstructed is returned when an Amendment was not built by
	// NewAmendment or RestoreAmendment.
	ErrAmendmentIsNotConstructed = errors.New("Amendment must be created via NewAmendment constructor")
)

// Amendment is a requested change to an in-progress shipment. It is the
// aggregate root of the negotiation; every mutation goes through a method
// that consults the Status table first and leaves the aggregate untouched
// when the transition is illegal.
//
// Amendment follows these invariants:
//   - id, shipmentID, requestedBy and createdAt never change
//   - status is one of the five protocol statuses
//   - extraCost and delayDays are set if and only if status is Accepted
//   - vendorReplyAt is set once, by the vendor response
type Amendment struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	requestedBy kernel.UUID
	reason      string

	// extraCost and delayDays are the vendor's impact estimate (nil until accepted)
	extraCost *kernel.Money
	delayDays *int

	vendorReason string
	status       Status

	createdAt     time.Time
	updatedAt     time.Time
	vendorReplyAt *time.Time

	isConstructed bool
}

// Snapshot is the flat state of an Amendment, used to restore it from
// persistence and to map it to transport or storage representations.
type Snapshot struct {
	ID            kernel.UUID
	ShipmentID    kernel.UUID
	RequestedBy   kernel.UUID
	Reason        string
	ExtraCost     *kernel.Money
	DelayDays     *int
	VendorReason  string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	VendorReplyAt *time.Time
}

// NewAmendment opens an amendment in Requested status. Ownership of the
// shipment is checked by the caller; this constructor only validates values.
//
// Example:
//
//	a, err := amendment.NewAmendment(kernel.NewUUID(), shipmentID, clientID, "port delay", time.Now())
//	if err != nil {
//	    // reason missing or identifiers invalid
//	}
func NewAmendment(id, shipmentID, requestedBy kernel.UUID, reason string, now time.Time) (*Amendment, error) {
	status, err := Unknown.Apply(Create)
	if err != nil {
		return nil, err
	}

	a := &Amendment{
		status:        status,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err = errors.Join(
		a.setID(id),
		a.setShipmentID(shipmentID),
		a.setRequestedBy(requestedBy),
		a.setReason(reason),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAmendment rebuilds an amendment read from storage and re-checks the
// invariants, so a corrupted row cannot re-enter the workflow.
func RestoreAmendment(s Snapshot) (*Amendment, error) {
	a := &Amendment{
		extraCost:     s.ExtraCost,
		delayDays:     s.DelayDays,
		vendorReason:  s.VendorReason,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		vendorReplyAt: s.VendorReplyAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(s.ID),
		a.setShipmentID(s.ShipmentID),
		a.setRequestedBy(s.RequestedBy),
		a.setReason(s.Reason),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	a.status = s.Status

	if err := a.checkImpactConsistency(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Amendment was built through a constructor.
func (a *Amendment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAmendmentIsNotConstructed
	}
	return nil
}

// IsEqual compares amendments by identifier.
func (a *Amendment) IsEqual(other *Amendment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

func (a *Amendment) ID() kernel.UUID {
	return a.id
}

func (a *Amendment) ShipmentID() kernel.UUID {
	return a.shipmentID
}

func (a *Amendment) RequestedBy() kernel.UUID {
	return a.requestedBy
}

func (a *Amendment) Reason() string {
	return a.reason
}

// ExtraCost is nil unless the vendor accepted.
func (a *Amendment) ExtraCost() *kernel.Money {
	return a.extraCost
}

// DelayDays is nil unless the vendor accepted.
func (a *Amendment) DelayDays() *int {
	return a.delayDays
}

func (a *Amendment) VendorReason() string {
	return a.vendorReason
}

func (a *Amendment) Status() Status {
	return a.status
}

func (a *Amendment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Amendment) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Amendment) VendorReplyAt() *time.Time {
	return a.vendorReplyAt
}

// Snapshot returns a copy of the current state.
func (a *Amendment) Snapshot() Snapshot {
	return Snapshot{
		ID:            a.id,
		ShipmentID:    a.shipmentID,
		RequestedBy:   a.requestedBy,
		Reason:        a.reason,
		ExtraCost:     a.extraCost,
		DelayDays:     a.delayDays,
		VendorReason:  a.vendorReason,
		Status:        a.status,
		CreatedAt:     a.createdAt,
		UpdatedAt:     a.updatedAt,
		VendorReplyAt: a.vendorReplyAt,
	}
}

// AdminDecide applies an admin approve, reject or push. Only the status
// changes; cost fields are never touched by an admin.
func (a *Amendment) AdminDecide(action Action, now time.Time) error {
	if !action.IsAdminDecision() {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%s is not an admin decision", action))
	}

	next, err := a.status.Apply(action)
	if err != nil {
		return err
	}

	a.status = next
	a.updatedAt = now.UTC()
	return nil
}

// VendorApprove accepts the amendment and records the vendor's cost and
// schedule impact.
//
// Example:
//
//	cost, _ := kernel.MoneyFromString("500")
//	err := a.VendorApprove(cost, 3, "", time.Now()) // status Accepted, extraCost 500.00, delayDays 3
func (a *Amendment) VendorApprove(extraCost kernel.Money, delayDays int, note string, now time.Time) error {
	if err := errors.Join(
		extraCost.Validate(),
		validateDelayDays(delayDays),
		validateNote(note),
	); err != nil {
		return err
	}

	next, err := a.status.Apply(VendorApprove)
	if err != nil {
		return err
	}

	replyAt := now.UTC()
	a.status = next
	a.extraCost = &extraCost
	a.delayDays = &delayDays
	a.vendorReason = strings.TrimSpace(note)
	a.vendorReplyAt = &replyAt
	a.updatedAt = replyAt
	return nil
}

// VendorReject rejects the amendment; any cost or delay values are cleared.
func (a *Amendment) VendorReject(note string, now time.Time) error {
	if err := validateNote(note); err != nil {
		return err
	}

	next, err := a.status.Apply(VendorReject)
	if err != nil {
		return err
	}

	replyAt := now.UTC()
	a.status = next
	a.extraCost = nil
	a.delayDays = nil
	a.vendorReason = strings.TrimSpace(note)
	a.vendorReplyAt = &replyAt
	a.updatedAt = replyAt
	return nil
}

func (a *Amendment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Amendment) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	a.shipmentID = id
	return nil
}

func (a *Amendment) setRequestedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requestedBy", err)
	}
	a.requestedBy = id
	return nil
}

func (a *Amendment) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if n := utf8.RuneCountInString(reason); n > MaxReasonLength {
		return errs.NewValueIsOutOfRangeError("reason length", n, 1, MaxReasonLength)
	}
	a.reason = reason
	return nil
}

// checkImpactConsistency enforces "cost and delay iff accepted" on restore.
func (a *Amendment) checkImpactConsistency() error {
	hasImpact := a.extraCost != nil && a.delayDays != nil
	partial := (a.extraCost == nil) != (a.delayDays == nil)

	switch {
	case partial:
		return errs.NewValueIsInvalidErrorWithCause(
			"impact", errors.New("extraCost and delayDays must be set together"))
	case a.status == Accepted && !hasImpact:
		return errs.NewValueIsInvalidErrorWithCause(
			"impact", fmt.Errorf("%s amendment has no cost or delay", a.status))
	case a.status != Accepted && hasImpact:
		return errs.NewValueIsInvalidErrorWithCause(
			"impact", fmt.Errorf("%s amendment must not carry cost or delay", a.status))
	}
	return nil
}

func validateDelayDays(days int) error {
	if days < 0 || days > MaxDelayDays {
		return errs.NewValueIsOutOfRangeError("delayDays", days, 0, MaxDelayDays)
	}
	return nil
}

func validateNote(note string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(note)); n > MaxReasonLength {
		return errs.NewValueIsOutOfRangeError("reason length", n, 0, MaxReasonLength)
	}
	return nil
}

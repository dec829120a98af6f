package services

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
)

// CapabilityPolicy is the role capability table: which role may invoke
// which amendment action. Exactly one role is expected per action.
type CapabilityPolicy interface {
	Allows(role actor.Role, action amendment.Action) (bool, error)
}

// VendorResponse is the vendor's answer to an amendment in client review.
// ExtraCost and DelayDays are only meaningful for VendorApprove; when omitted
// on approve they default to zero.
type VendorResponse struct {
	Action    amendment.Action
	ExtraCost *kernel.Money
	DelayDays *int
	Note      string
}

// TransitionAuthority decides whether an actor may move an amendment and
// applies the move. Checks run in a fixed order:
//
//  1. role capability (Forbidden)
//  2. shipment ownership (NotFound for clients, Forbidden for vendors)
//  3. status table (InvalidTransition)
//
// A failed check leaves the amendment untouched.
//
// Example usage:
//
//	authority, _ := services.NewTransitionAuthority(policy)
//	entry, err := authority.AdminDecide(admin, a, amendment.AdminApprove, time.Now())
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // a was not in requested status
//	}
type TransitionAuthority struct {
	policy CapabilityPolicy
}

// NewTransitionAuthority creates a TransitionAuthority backed by policy.
func NewTransitionAuthority(policy CapabilityPolicy) (TransitionAuthority, error) {
	if policy == nil {
		return TransitionAuthority{}, errs.NewValueIsRequiredError("policy")
	}
	return TransitionAuthority{policy: policy}, nil
}

// Authorize checks only the role capability. Handlers call it before loading
// anything so that a caller with the wrong role learns nothing about the record.
func (t TransitionAuthority) Authorize(who actor.Actor, action amendment.Action) error {
	if err := who.Validate(); err != nil {
		return err
	}
	if err := action.Validate(); err != nil {
		return err
	}

	allowed, err := t.policy.Allows(who.Role(), action)
	if err != nil {
		return fmt.Errorf("capability lookup for %s: %w", action, err)
	}
	if !allowed {
		return errs.NewForbiddenError(who.String(), action.String())
	}
	return nil
}

// Create opens a new amendment on a shipment the client owns. A shipment
// owned by someone else is reported as not found.
func (t TransitionAuthority) Create(
	who actor.Actor,
	sh *shipment.Shipment,
	id kernel.UUID,
	reason string,
	now time.Time,
) (*amendment.Amendment, amendment.HistoryEntry, error) {
	if err := t.Authorize(who, amendment.Create); err != nil {
		return nil, amendment.HistoryEntry{}, err
	}
	if err := sh.Validate(); err != nil {
		return nil, amendment.HistoryEntry{}, err
	}
	if !sh.IsOwnedBy(who.ID()) {
		return nil, amendment.HistoryEntry{}, errs.NewObjectNotFoundError("shipment", sh.ID().String())
	}

	a, err := amendment.NewAmendment(id, sh.ID(), who.ID(), reason, now)
	if err != nil {
		return nil, amendment.HistoryEntry{}, err
	}

	entry, err := amendment.NewHistoryEntry(a, amendment.Unknown, amendment.Create, who, "")
	if err != nil {
		return nil, amendment.HistoryEntry{}, err
	}
	return a, entry, nil
}

// AdminDecide applies approve, reject or push. Admins arbitrate every
// shipment, so there is no ownership check.
func (t TransitionAuthority) AdminDecide(
	who actor.Actor,
	a *amendment.Amendment,
	action amendment.Action,
	now time.Time,
) (amendment.HistoryEntry, error) {
	if !action.IsAdminDecision() {
		return amendment.HistoryEntry{}, errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%s is not an admin decision", action))
	}
	if err := t.Authorize(who, action); err != nil {
		return amendment.HistoryEntry{}, err
	}
	if err := a.Validate(); err != nil {
		return amendment.HistoryEntry{}, err
	}

	from := a.Status()
	if err := a.AdminDecide(action, now); err != nil {
		return amendment.HistoryEntry{}, err
	}

	return amendment.NewHistoryEntry(a, from, action, who, "")
}

// VendorRespond applies the winning vendor's approve or reject. sh must be
// the shipment the amendment belongs to.
func (t TransitionAuthority) VendorRespond(
	who actor.Actor,
	a *amendment.Amendment,
	sh *shipment.Shipment,
	resp VendorResponse,
	now time.Time,
) (amendment.HistoryEntry, error) {
	if !resp.Action.IsVendorResponse() {
		return amendment.HistoryEntry{}, errs.NewValueIsInvalidErrorWithCause(
			"response", fmt.Errorf("%s is not a vendor response", resp.Action))
	}
	if err := t.Authorize(who, resp.Action); err != nil {
		return amendment.HistoryEntry{}, err
	}
	if err := errors.Join(a.Validate(), sh.Validate()); err != nil {
		return amendment.HistoryEntry{}, err
	}
	if !sh.ID().IsEqual(a.ShipmentID()) {
		return amendment.HistoryEntry{}, errs.NewValueIsInvalidErrorWithCause(
			"shipment", fmt.Errorf("amendment %s belongs to shipment %s", a.ID(), a.ShipmentID()))
	}
	if !sh.IsWonBy(who.ID()) {
		return amendment.HistoryEntry{}, errs.NewForbiddenErrorWithCause(
			who.String(), resp.Action.String(),
			fmt.Errorf("not the winning vendor of shipment %s", sh.ID()))
	}

	from := a.Status()
	switch resp.Action {
	case amendment.VendorApprove:
		cost := kernel.ZeroMoney()
		if resp.ExtraCost != nil {
			cost = *resp.ExtraCost
		}
		days := 0
		if resp.DelayDays != nil {
			days = *resp.DelayDays
		}
		if err := a.VendorApprove(cost, days, resp.Note, now); err != nil {
			return amendment.HistoryEntry{}, err
		}
	case amendment.VendorReject:
		if resp.ExtraCost != nil || resp.DelayDays != nil {
			return amendment.HistoryEntry{}, errs.NewValueIsInvalidErrorWithCause(
				"response", errors.New("extraCost and delayDays are only accepted with approve"))
		}
		if err := a.VendorReject(resp.Note, now); err != nil {
			return amendment.HistoryEntry{}, err
		}
	}

	return amendment.NewHistoryEntry(a, from, resp.Action, who, resp.Note)
}

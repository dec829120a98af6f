package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrVendorRespondCommandIsNotConstructed = errors.New(
	"VendorRespondCommand must be created via NewVendorRespondCommand constructor",
)

// VendorRespondCommand carries the winning vendor's approve or reject.
//
// Example:
//
//	cost, _ := kernel.MoneyFromString("500")
//	days := 3
//	cmd, err := NewVendorRespondCommand(vendor, amendmentID, amendment.VendorApprove, &cost, &days, "")
type VendorRespondCommand struct { //nolint:recvcheck //using for validation
	actor       actor.Actor
	amendmentID kernel.UUID
	response    services.VendorResponse

	guard guard.ConstructorGuard
}

// NewVendorRespondCommand validates the shape of the response: extraCost and
// delayDays may only accompany an approve, delayDays must lie in
// 0..amendment.MaxDelayDays and the note is bounded like a reason.
func NewVendorRespondCommand(
	who actor.Actor,
	amendmentID kernel.UUID,
	action amendment.Action,
	extraCost *kernel.Money,
	delayDays *int,
	note string,
) (VendorRespondCommand, error) {
	if err := who.Validate(); err != nil {
		return VendorRespondCommand{}, err
	}

	c := VendorRespondCommand{actor: who, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		c.setAmendmentID(amendmentID),
		c.setResponse(action, extraCost, delayDays, note),
	); err != nil {
		return VendorRespondCommand{}, err
	}

	return c, nil
}

func (c VendorRespondCommand) Validate() error {
	return c.guard.Validate(ErrVendorRespondCommandIsNotConstructed)
}

func (c VendorRespondCommand) Actor() actor.Actor {
	return c.actor
}

func (c VendorRespondCommand) AmendmentID() kernel.UUID {
	return c.amendmentID
}

func (c VendorRespondCommand) Response() services.VendorResponse {
	return c.response
}

func (c *VendorRespondCommand) setAmendmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("amendmentId", err)
	}
	c.amendmentID = id
	return nil
}

func (c *VendorRespondCommand) setResponse(
	action amendment.Action,
	extraCost *kernel.Money,
	delayDays *int,
	note string,
) error {
	if !action.IsVendorResponse() {
		return errs.NewValueIsInvalidErrorWithCause("response", fmt.Errorf("%s is not a vendor response", action))
	}

	var errList []error
	if action == amendment.VendorReject && (extraCost != nil || delayDays != nil) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"response", errors.New("extraCost and delayDays are only accepted with approve")))
	}
	if extraCost != nil {
		errList = append(errList, extraCost.Validate())
	}
	if delayDays != nil && (*delayDays < 0 || *delayDays > amendment.MaxDelayDays) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("delayDays", *delayDays, 0, amendment.MaxDelayDays))
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(note)); n > amendment.MaxReasonLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("reason length", n, 0, amendment.MaxReasonLength))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.response = services.VendorResponse{
		Action:    action,
		ExtraCost: extraCost,
		DelayDays: delayDays,
		Note:      strings.TrimSpace(note),
	}
	return nil
}

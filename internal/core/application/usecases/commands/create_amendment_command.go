package commands

import (
	"errors"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateAmendmentCommandIsNotConstructed = errors.New(
	"CreateAmendmentCommand must be created via NewCreateAmendmentCommand constructor",
)

// CreateAmendmentCommand is a client's request to change an in-progress shipment.
//
// Example:
//
//	cmd, err := NewCreateAmendmentCommand(client, kernel.NewUUID(), shipmentID, "port delay")
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateAmendmentCommand struct { //nolint:recvcheck //using for validation
	actor       actor.Actor
	amendmentID kernel.UUID
	shipmentID  kernel.UUID
	reason      string

	guard guard.ConstructorGuard
}

// NewCreateAmendmentCommand validates identifiers and that a reason is given.
// The reason length and ownership are checked when the command is handled.
func NewCreateAmendmentCommand(
	who actor.Actor,
	amendmentID kernel.UUID,
	shipmentID kernel.UUID,
	reason string,
) (CreateAmendmentCommand, error) {
	c := CreateAmendmentCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := who.Validate(); err != nil {
		return CreateAmendmentCommand{}, err
	}
	c.actor = who

	if err := errors.Join(
		c.setAmendmentID(amendmentID),
		c.setShipmentID(shipmentID),
	); err != nil {
		return CreateAmendmentCommand{}, err
	}

	return c, nil
}

func (c CreateAmendmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAmendmentCommandIsNotConstructed)
}

func (c CreateAmendmentCommand) Actor() actor.Actor {
	return c.actor
}

func (c CreateAmendmentCommand) AmendmentID() kernel.UUID {
	return c.amendmentID
}

func (c CreateAmendmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateAmendmentCommand) Reason() string {
	return c.reason
}

func (c *CreateAmendmentCommand) setAmendmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.amendmentID = id
	return nil
}

func (c *CreateAmendmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	c.shipmentID = id
	return nil
}

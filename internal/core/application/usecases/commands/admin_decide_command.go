package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAdminDecideCommandIsNotConstructed = errors.New(
	"AdminDecideCommand must be created via NewAdminDecideCommand constructor",
)

// AdminDecideCommand carries an admin's approve, reject or push.
type AdminDecideCommand struct { //nolint:recvcheck //using for validation
	actor       actor.Actor
	amendmentID kernel.UUID
	action      amendment.Action

	guard guard.ConstructorGuard
}

// NewAdminDecideCommand accepts only admin actions. Whether the caller is an
// admin is decided by the capability policy when the command is handled.
func NewAdminDecideCommand(who actor.Actor, amendmentID kernel.UUID, action amendment.Action) (AdminDecideCommand, error) {
	if err := who.Validate(); err != nil {
		return AdminDecideCommand{}, err
	}

	c := AdminDecideCommand{actor: who, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		c.setAmendmentID(amendmentID),
		c.setAction(action),
	); err != nil {
		return AdminDecideCommand{}, err
	}

	return c, nil
}

func (c AdminDecideCommand) Validate() error {
	return c.guard.Validate(ErrAdminDecideCommandIsNotConstructed)
}

func (c AdminDecideCommand) Actor() actor.Actor {
	return c.actor
}

func (c AdminDecideCommand) AmendmentID() kernel.UUID {
	return c.amendmentID
}

func (c AdminDecideCommand) Action() amendment.Action {
	return c.action
}

func (c *AdminDecideCommand) setAmendmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("amendmentId", err)
	}
	c.amendmentID = id
	return nil
}

func (c *AdminDecideCommand) setAction(action amendment.Action) error {
	if !action.IsAdminDecision() {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%s is not an admin decision", action))
	}
	c.action = action
	return nil
}

// Package actor models the authenticated caller of an amendment operation.
// Identity is resolved outside the core and threaded explicitly into every
// command and query.
package actor

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errs.NewUnauthorizedError("actor must be resolved via NewActor")

// Actor is an identified caller with a single role.
type Actor struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor validates both parts of an identity. Any failure is reported as
// unauthorized: an actor that cannot be resolved cannot act.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, errs.NewUnauthorizedError(err.Error())
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

// String is used in log records and error messages.
func (a Actor) String() string {
	return a.role.String() + ":" + a.id.String()
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

package queries

import (
	"errors"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetAmendmentQueryIsNotConstructed = errors.New(
	"GetAmendmentQuery must be created via NewGetAmendmentQuery constructor",
)

// GetAmendmentQuery reads a single amendment. An amendment the actor may not
// see is reported as not found.
type GetAmendmentQuery struct {
	actor       actor.Actor
	amendmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAmendmentQuery(who actor.Actor, amendmentID kernel.UUID) (GetAmendmentQuery, error) {
	if err := who.Validate(); err != nil {
		return GetAmendmentQuery{}, err
	}
	if err := amendmentID.Validate(); err != nil {
		return GetAmendmentQuery{}, errs.NewValueIsRequiredErrorWithCause("amendmentId", err)
	}

	return GetAmendmentQuery{
		actor:       who,
		amendmentID: amendmentID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetAmendmentQuery) Validate() error {
	return q.guard.Validate(ErrGetAmendmentQueryIsNotConstructed)
}

func (q GetAmendmentQuery) Actor() actor.Actor {
	return q.actor
}

func (q GetAmendmentQuery) AmendmentID() kernel.UUID {
	return q.amendmentID
}

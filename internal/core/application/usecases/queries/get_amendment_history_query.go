package queries

import (
	"errors"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetAmendmentHistoryQueryIsNotConstructed = errors.New(
	"GetAmendmentHistoryQuery must be created via NewGetAmendmentHistoryQuery constructor",
)

// GetAmendmentHistoryQuery reads the audit trail of one amendment, under the
// same visibility rule as GetAmendmentQuery.
type GetAmendmentHistoryQuery struct {
	actor       actor.Actor
	amendmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAmendmentHistoryQuery(who actor.Actor, amendmentID kernel.UUID) (GetAmendmentHistoryQuery, error) {
	if err := who.Validate(); err != nil {
		return GetAmendmentHistoryQuery{}, err
	}
	if err := amendmentID.Validate(); err != nil {
		return GetAmendmentHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("amendmentId", err)
	}

	return GetAmendmentHistoryQuery{
		actor:       who,
		amendmentID: amendmentID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetAmendmentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetAmendmentHistoryQueryIsNotConstructed)
}

func (q GetAmendmentHistoryQuery) Actor() actor.Actor {
	return q.actor
}

func (q GetAmendmentHistoryQuery) AmendmentID() kernel.UUID {
	return q.amendmentID
}

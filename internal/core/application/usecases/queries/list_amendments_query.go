// Package queries contains the read side of the amendment workflow. Every
// query carries the calling actor and is answered through the same
// ownership predicate, so no view returns another actor's amendments.
package queries

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200

	// StatusFilterAll disables the status filter, including the admin default.
	StatusFilterAll = "all"
)

var ErrListAmendmentsQueryIsNotConstructed = errors.New(
	"ListAmendmentsQuery must be created via NewListAmendmentsQuery constructor",
)

// ListAmendmentsQuery is the role-scoped amendment list.
//
// The status filter resolves per role:
//   - admin: empty means requested, "all" means every status
//   - client and vendor: empty or "all" means every status
//   - pendingOnly narrows any role to client_review
//
// Example:
//
//	q, err := queries.NewListAmendmentsQuery(who, "", true, 0, 0)
//	page, err := handler.Handle(ctx, q) // the client's amendments awaiting a response
type ListAmendmentsQuery struct {
	actor  actor.Actor
	status *amendment.Status
	limit  int
	offset int

	guard guard.ConstructorGuard
}

func NewListAmendmentsQuery(
	who actor.Actor,
	status string,
	pendingOnly bool,
	limit, offset int,
) (ListAmendmentsQuery, error) {
	if err := who.Validate(); err != nil {
		return ListAmendmentsQuery{}, err
	}

	filter, err := resolveStatusFilter(who, status, pendingOnly)
	if err != nil {
		return ListAmendmentsQuery{}, err
	}

	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 || limit > MaxPageLimit {
		return ListAmendmentsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageLimit)
	}
	if offset < 0 {
		return ListAmendmentsQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	return ListAmendmentsQuery{
		actor:  who,
		status: filter,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func resolveStatusFilter(who actor.Actor, status string, pendingOnly bool) (*amendment.Status, error) {
	if pendingOnly {
		if status != "" && status != amendment.ClientReview.String() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"status", fmt.Errorf("pending lists %s only, got %q", amendment.ClientReview, status))
		}
		pending := amendment.ClientReview
		return &pending, nil
	}

	switch status {
	case StatusFilterAll:
		return nil, nil
	case "":
		if who.Is(actor.Admin) {
			requested := amendment.Requested
			return &requested, nil
		}
		return nil, nil
	}

	parsed, err := amendment.StatusFromString(status)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (q ListAmendmentsQuery) Validate() error {
	return q.guard.Validate(ErrListAmendmentsQueryIsNotConstructed)
}

func (q ListAmendmentsQuery) Actor() actor.Actor {
	return q.actor
}

// Status is nil when every status is listed.
func (q ListAmendmentsQuery) Status() *amendment.Status {
	return q.status
}

func (q ListAmendmentsQuery) Limit() int {
	return q.limit
}

func (q ListAmendmentsQuery) Offset() int {
	return q.offset
}

// ListAmendmentsQueryResponse is one page, newest first.
type ListAmendmentsQueryResponse struct {
	Items  []amendment.Snapshot
	Limit  int
	Offset int
}

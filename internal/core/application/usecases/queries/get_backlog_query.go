package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetBacklogQueryIsNotConstructed = errors.New(
	"GetBacklogQuery must be created via NewGetBacklogQuery constructor",
)

// GetBacklogQuery counts amendments that still wait for someone. An amendment
// is stale when it has not changed status for longer than staleAfter.
type GetBacklogQuery struct {
	now        time.Time
	staleAfter time.Duration

	guard guard.ConstructorGuard
}

func NewGetBacklogQuery(now time.Time, staleAfter time.Duration) (GetBacklogQuery, error) {
	if now.IsZero() {
		return GetBacklogQuery{}, errs.NewValueIsRequiredError("now")
	}
	if staleAfter <= 0 {
		return GetBacklogQuery{}, errs.NewValueIsOutOfRangeError("staleAfter", staleAfter, "1ns", "unbounded")
	}
	return GetBacklogQuery{now: now, staleAfter: staleAfter, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBacklogQuery) Validate() error {
	return q.guard.Validate(ErrGetBacklogQueryIsNotConstructed)
}

// StaleBefore is the updated_at cutoff.
func (q GetBacklogQuery) StaleBefore() time.Time {
	return q.now.Add(-q.staleAfter).UTC()
}

// BacklogEntry is the load on one open status.
type BacklogEntry struct {
	Status amendment.Status
	Open   int64
	Stale  int64
}

// GetBacklogQueryResponse has one entry per open status in protocol order,
// including zero counts.
type GetBacklogQueryResponse struct {
	Entries     []BacklogEntry
	StaleBefore time.Time
}

// OpenStatuses are the statuses an amendment can still leave.
func OpenStatuses() []amendment.Status {
	open := make([]amendment.Status, 0, 3)
	for _, s := range amendment.AllStatuses() {
		if !s.IsTerminal() {
			open = append(open, s)
		}
	}
	return open
}

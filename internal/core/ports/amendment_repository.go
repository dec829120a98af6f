// Package ports defines the persistence contracts the amendment workflow
// depends on. Adapters under internal/adapters/out implement them.
package ports

import (
	"context"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
)

// AmendmentRepository defines the persistence contract for amendment aggregates.
type AmendmentRepository interface {
	// Add persists a new amendment. The amendment must be valid and not exist yet.
	Add(ctx context.Context, aggregate *amendment.Amendment) error

	// Get retrieves an amendment by identifier.
	// Returns errs.ErrObjectNotFound when no row exists.
	Get(ctx context.Context, id kernel.UUID) (*amendment.Amendment, error)

	// UpdateWhere writes the aggregate only if the stored status still equals
	// expected. The check and the write are a single conditional statement.
	//
	// When no row is written it returns errs.ErrConflict if the amendment
	// exists (someone else moved it first) and errs.ErrObjectNotFound otherwise.
	//
	// Example:
	//   from := a.Status()
	//   if err := a.AdminDecide(amendment.AdminApprove, now); err != nil {
	//       return err
	//   }
	//   if err := repo.UpdateWhere(ctx, a, from); errors.Is(err, errs.ErrConflict) {
	//       // re-read and decide again
	//   }
	UpdateWhere(ctx context.Context, aggregate *amendment.Amendment, expected amendment.Status) error

	// AppendHistory records one applied transition.
	AppendHistory(ctx context.Context, entry amendment.HistoryEntry) error
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/services"
)

// CreateAmendmentCommandHandler opens a new amendment on a client's shipment.
// The amendment row and its first history entry are written in one transaction.
type CreateAmendmentCommandHandler struct {
	uowFactory UoWFactory
	authority  services.TransitionAuthority
	logger     *slog.Logger
}

func NewCreateAmendmentCommandHandler(
	uowFactory UoWFactory,
	authority services.TransitionAuthority,
	logger *slog.Logger,
) CreateAmendmentCommandHandler {
	return CreateAmendmentCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		logger:     logger.With("component", "create_amendment_handler"),
	}
}

// Handle returns the created amendment. A shipment that does not exist or is
// owned by another client yields errs.ErrObjectNotFound and nothing is written.
func (h CreateAmendmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateAmendmentCommand,
) (amendment.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return amendment.Snapshot{}, err
	}

	if err := h.authority.Authorize(cmd.Actor(), amendment.Create); err != nil {
		return amendment.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return amendment.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sh, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return amendment.Snapshot{}, err
	}

	a, entry, err := h.authority.Create(cmd.Actor(), sh, cmd.AmendmentID(), cmd.Reason(), time.Now())
	if err != nil {
		return amendment.Snapshot{}, err
	}

	repo := uow.AmendmentRepository()
	if err = repo.Add(ctx, a); err != nil {
		return amendment.Snapshot{}, err
	}

	if err = repo.AppendHistory(ctx, entry); err != nil {
		return amendment.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return amendment.Snapshot{}, err
	}

	h.logger.InfoContext(ctx, "Amendment created",
		"amendment_id", a.ID().String(),
		"shipment_id", a.ShipmentID().String(),
		"actor", cmd.Actor().String(),
	)
	return a.Snapshot(), nil
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/services"
)

// VendorRespondCommandHandler applies the winning vendor's response. The
// shipment is loaded inside the same transaction to resolve the quote winner.
type VendorRespondCommandHandler struct {
	uowFactory UoWFactory
	authority  services.TransitionAuthority
	logger     *slog.Logger
}

func NewVendorRespondCommandHandler(
	uowFactory UoWFactory,
	authority services.TransitionAuthority,
	logger *slog.Logger,
) VendorRespondCommandHandler {
	return VendorRespondCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		logger:     logger.With("component", "vendor_respond_handler"),
	}
}

func (h VendorRespondCommandHandler) Handle(ctx context.Context, cmd VendorRespondCommand) (amendment.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return amendment.Snapshot{}, err
	}

	resp := cmd.Response()
	if err := h.authority.Authorize(cmd.Actor(), resp.Action); err != nil {
		return amendment.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return amendment.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AmendmentRepository()
	a, err := repo.Get(ctx, cmd.AmendmentID())
	if err != nil {
		return amendment.Snapshot{}, err
	}

	sh, err := uow.ShipmentRepository().Get(ctx, a.ShipmentID())
	if err != nil {
		return amendment.Snapshot{}, err
	}

	from := a.Status()
	entry, err := h.authority.VendorRespond(cmd.Actor(), a, sh, resp, time.Now())
	if err != nil {
		return amendment.Snapshot{}, err
	}

	if err = repo.UpdateWhere(ctx, a, from); err != nil {
		return amendment.Snapshot{}, err
	}

	if err = repo.AppendHistory(ctx, entry); err != nil {
		return amendment.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return amendment.Snapshot{}, err
	}

	h.logger.InfoContext(ctx, "Amendment transitioned",
		"amendment_id", a.ID().String(),
		"from", from.String(),
		"to", a.Status().String(),
		"actor", cmd.Actor().String(),
	)
	return a.Snapshot(), nil
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/services"
)

// AdminDecideCommandHandler applies an admin decision as a single conditional
// write. If another request moved the amendment after it was read, the write
// is a no-op and errs.ErrConflict is returned; the caller should re-read and
// decide again.
//
// Example:
//
//	cmd, _ := NewAdminDecideCommand(admin, amendmentID, amendment.AdminApprove)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // lost the race, retry
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // not in requested status
//	}
type AdminDecideCommandHandler struct {
	uowFactory UoWFactory
	authority  services.TransitionAuthority
	logger     *slog.Logger
}

func NewAdminDecideCommandHandler(
	uowFactory UoWFactory,
	authority services.TransitionAuthority,
	logger *slog.Logger,
) AdminDecideCommandHandler {
	return AdminDecideCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		logger:     logger.With("component", "admin_decide_handler"),
	}
}

func (h AdminDecideCommandHandler) Handle(ctx context.Context, cmd AdminDecideCommand) (amendment.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return amendment.Snapshot{}, err
	}

	if err := h.authority.Authorize(cmd.Actor(), cmd.Action()); err != nil {
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

	from := a.Status()
	entry, err := h.authority.AdminDecide(cmd.Actor(), a, cmd.Action(), time.Now())
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

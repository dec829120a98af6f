package amendment

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/kernel"
)

// HistoryEntry records one applied transition. Entries are append-only and
// written in the same transaction as the status change they describe.
type HistoryEntry struct {
	ID          kernel.UUID
	AmendmentID kernel.UUID
	From        Status
	To          Status
	Action      Action
	ActorID     kernel.UUID
	ActorRole   actor.Role
	Note        string
	At          time.Time
}

// NewHistoryEntry describes the transition from -> a.Status() performed by who.
// For a create entry from is Unknown.
func NewHistoryEntry(a *Amendment, from Status, action Action, who actor.Actor, note string) (HistoryEntry, error) {
	if err := errors.Join(a.Validate(), action.Validate(), who.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{
		ID:          kernel.NewUUID(),
		AmendmentID: a.ID(),
		From:        from,
		To:          a.Status(),
		Action:      action,
		ActorID:     who.ID(),
		ActorRole:   who.Role(),
		Note:        note,
		At:          a.UpdatedAt(),
	}, nil
}

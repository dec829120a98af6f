package queries

import (
	"fmt"
	"time"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// visibleTo narrows the amendments table, aliased a, to the rows who may
// read. Admins see everything, clients the amendments on shipments they own,
// vendors the amendments on shipments whose winning quote is theirs.
func visibleTo(db *gorm.DB, who actor.Actor) *gorm.DB {
	tx := db.Table("amendments AS a")

	switch who.Role() {
	case actor.Admin:
		return tx
	case actor.Client:
		return tx.Joins("JOIN shipments s ON s.id = a.shipment_id").
			Where("s.client_id = ?", who.ID().Bytes())
	case actor.Vendor:
		return tx.Joins("JOIN quotes q ON q.shipment_id = a.shipment_id AND q.is_winner").
			Where("q.vendor_id = ?", who.ID().Bytes())
	default:
		return tx.Where("FALSE")
	}
}

type amendmentRow struct {
	ID            uuid.UUID
	ShipmentID    uuid.UUID
	RequestedBy   uuid.UUID
	Reason        string
	ExtraCost     *decimal.Decimal
	DelayDays     *int
	VendorReason  string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	VendorReplyAt *time.Time
}

// toSnapshot maps a stored row. Restore failures are reported without
// wrapping the domain error, so they classify as internal.
func (r amendmentRow) toSnapshot() (amendment.Snapshot, error) {
	s, err := r.snapshot()
	if err != nil {
		return amendment.Snapshot{}, fmt.Errorf("restore amendment %s: %v", r.ID, err)
	}
	return s, nil
}

func (r amendmentRow) snapshot() (amendment.Snapshot, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return amendment.Snapshot{}, err
	}
	shipmentID, err := kernel.UUIDFromBytes(r.ShipmentID[:])
	if err != nil {
		return amendment.Snapshot{}, err
	}
	requestedBy, err := kernel.UUIDFromBytes(r.RequestedBy[:])
	if err != nil {
		return amendment.Snapshot{}, err
	}
	status, err := amendment.StatusFromString(r.Status)
	if err != nil {
		return amendment.Snapshot{}, err
	}

	var extraCost *kernel.Money
	if r.ExtraCost != nil {
		m, moneyErr := kernel.NewMoney(*r.ExtraCost)
		if moneyErr != nil {
			return amendment.Snapshot{}, moneyErr
		}
		extraCost = &m
	}

	var replyAt *time.Time
	if r.VendorReplyAt != nil {
		t := r.VendorReplyAt.UTC()
		replyAt = &t
	}

	return amendment.Snapshot{
		ID:            id,
		ShipmentID:    shipmentID,
		RequestedBy:   requestedBy,
		Reason:        r.Reason,
		ExtraCost:     extraCost,
		DelayDays:     r.DelayDays,
		VendorReason:  r.VendorReason,
		Status:        status,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
		VendorReplyAt: replyAt,
	}, nil
}

type historyRow struct {
	ID          uuid.UUID
	AmendmentID uuid.UUID
	FromStatus  string
	ToStatus    string
	Action      string
	ActorID     uuid.UUID
	ActorRole   string
	Note        string
	CreatedAt   time.Time
}

func (r historyRow) toEntry() (amendment.HistoryEntry, error) {
	e, err := r.entry()
	if err != nil {
		return amendment.HistoryEntry{}, fmt.Errorf("restore history entry %s: %v", r.ID, err)
	}
	return e, nil
}

// entry maps a stored history row. The create entry's from_status is
// "unknown", which is not a protocol status.
func (r historyRow) entry() (amendment.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return amendment.HistoryEntry{}, err
	}
	amendmentID, err := kernel.UUIDFromBytes(r.AmendmentID[:])
	if err != nil {
		return amendment.HistoryEntry{}, err
	}
	actorID, err := kernel.UUIDFromBytes(r.ActorID[:])
	if err != nil {
		return amendment.HistoryEntry{}, err
	}

	from := amendment.Unknown
	if r.FromStatus != amendment.Unknown.String() {
		if from, err = amendment.StatusFromString(r.FromStatus); err != nil {
			return amendment.HistoryEntry{}, err
		}
	}
	to, err := amendment.StatusFromString(r.ToStatus)
	if err != nil {
		return amendment.HistoryEntry{}, err
	}
	action, err := amendment.ActionFromString(r.Action)
	if err != nil {
		return amendment.HistoryEntry{}, err
	}
	role, err := actor.RoleFromString(r.ActorRole)
	if err != nil {
		return amendment.HistoryEntry{}, err
	}

	return amendment.HistoryEntry{
		ID:          id,
		AmendmentID: amendmentID,
		From:        from,
		To:          to,
		Action:      action,
		ActorID:     actorID,
		ActorRole:   role,
		Note:        r.Note,
		At:          r.CreatedAt.UTC(),
	}, nil
}

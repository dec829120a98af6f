// Package amendmentrepo maps amendment aggregates and their history entries
// to the amendments and amendment_history tables.
package amendmentrepo

import (
	"time"

	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmendmentDTO is a row of the amendments table. Status is stored by its
// protocol name so the CHECK constraint and ad-hoc SQL stay readable.
type AmendmentDTO struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ShipmentID    uuid.UUID        `gorm:"type:uuid;index"`
	RequestedBy   uuid.UUID        `gorm:"type:uuid"`
	Reason        string           `gorm:"type:text"`
	ExtraCost     *decimal.Decimal `gorm:"type:numeric(12,2)"`
	DelayDays     *int
	VendorReason  string    `gorm:"type:text"`
	Status        string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
	VendorReplyAt *time.Time
}

func (AmendmentDTO) TableName() string {
	return "amendments"
}

// HistoryDTO is a row of the amendment_history table.
type HistoryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AmendmentID uuid.UUID `gorm:"type:uuid;index"`
	FromStatus  string
	ToStatus    string
	Action      string
	ActorID     uuid.UUID `gorm:"type:uuid"`
	ActorRole   string
	Note        string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

func (HistoryDTO) TableName() string {
	return "amendment_history"
}

func fromDomain(a *amendment.Amendment) AmendmentDTO {
	s := a.Snapshot()

	var extraCost *decimal.Decimal
	if s.ExtraCost != nil {
		amount := s.ExtraCost.Amount()
		extraCost = &amount
	}

	return AmendmentDTO{
		ID:            s.ID.Bytes(),
		ShipmentID:    s.ShipmentID.Bytes(),
		RequestedBy:   s.RequestedBy.Bytes(),
		Reason:        s.Reason,
		ExtraCost:     extraCost,
		DelayDays:     s.DelayDays,
		VendorReason:  s.VendorReason,
		Status:        s.Status.String(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		VendorReplyAt: s.VendorReplyAt,
	}
}

// toDomain goes through RestoreAmendment, so a row that violates the
// aggregate invariants is rejected rather than loaded.
func toDomain(dto AmendmentDTO) (*amendment.Amendment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	requestedBy, err := kernel.UUIDFromBytes(dto.RequestedBy[:])
	if err != nil {
		return nil, err
	}
	status, err := amendment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var extraCost *kernel.Money
	if dto.ExtraCost != nil {
		m, moneyErr := kernel.NewMoney(*dto.ExtraCost)
		if moneyErr != nil {
			return nil, moneyErr
		}
		extraCost = &m
	}

	return amendment.RestoreAmendment(amendment.Snapshot{
		ID:            id,
		ShipmentID:    shipmentID,
		RequestedBy:   requestedBy,
		Reason:        dto.Reason,
		ExtraCost:     extraCost,
		DelayDays:     dto.DelayDays,
		VendorReason:  dto.VendorReason,
		Status:        status,
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
		VendorReplyAt: utcPtr(dto.VendorReplyAt),
	})
}

func historyFromDomain(e amendment.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		ID:          e.ID.Bytes(),
		AmendmentID: e.AmendmentID.Bytes(),
		FromStatus:  e.From.String(),
		ToStatus:    e.To.String(),
		Action:      e.Action.String(),
		ActorID:     e.ActorID.Bytes(),
		ActorRole:   e.ActorRole.String(),
		Note:        e.Note,
		CreatedAt:   e.At,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

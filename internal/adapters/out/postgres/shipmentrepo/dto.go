// Package shipmentrepo resolves shipment ownership from the shipments and
// quotes tables.
package shipmentrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is a row of the shipments table.
type ShipmentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// QuoteDTO is a vendor's bid on a shipment. At most one quote per shipment
// has IsWinner set.
type QuoteDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID       `gorm:"type:uuid;index"`
	VendorID   uuid.UUID       `gorm:"type:uuid;index"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsWinner   bool
}

func (QuoteDTO) TableName() string {
	return "quotes"
}

// ownershipRow is the projection read by Get.
type ownershipRow struct {
	ID       uuid.UUID
	ClientID uuid.UUID
	VendorID *uuid.UUID
}

package shipmentrepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Get loads the shipment owner and, when a quote has been selected, the
// winning vendor.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rows []ownershipRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.client_id,
			q.vendor_id
		FROM shipments s
		LEFT JOIN quotes q ON q.shipment_id = s.id AND q.is_winner
		WHERE s.id = ?
	`, id.Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundError("shipment", id.String())
	}

	row := rows[0]
	clientID, err := kernel.UUIDFromBytes(row.ClientID[:])
	if err != nil {
		return nil, err
	}

	var winner *kernel.UUID
	if row.VendorID != nil {
		vendorID, vendorErr := kernel.UUIDFromBytes(row.VendorID[:])
		if vendorErr != nil {
			return nil, vendorErr
		}
		winner = &vendorID
	}

	return shipment.RestoreShipment(id, clientID, winner)
}

// Add registers a shipment. The amendment workflow never calls it; it exists
// for seeding and tests.
func (r *GormShipmentRepository) Add(ctx context.Context, id, clientID kernel.UUID) error {
	dto := ShipmentDTO{ID: id.Bytes(), ClientID: clientID.Bytes()}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddQuote records a vendor's bid, optionally as the winning one.
func (r *GormShipmentRepository) AddQuote(
	ctx context.Context,
	shipmentID, vendorID kernel.UUID,
	amount kernel.Money,
	winner bool,
) (kernel.UUID, error) {
	id := kernel.NewUUID()
	dto := QuoteDTO{
		ID:         id.Bytes(),
		ShipmentID: shipmentID.Bytes(),
		VendorID:   vendorID.Bytes(),
		Amount:     amount.Amount(),
		IsWinner:   winner,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return kernel.UUID{}, err
	}
	return id, nil
}

package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// ShipmentRepository resolves shipment ownership: the client who raised it
// and the vendor whose quote won.
type ShipmentRepository interface {
	// Get returns errs.ErrObjectNotFound when the shipment does not exist.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
}

// Package shipment holds the read model of a shipment as the amendment
// workflow sees it: who owns it and which vendor won its quote.
package shipment

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via RestoreShipment")

// Shipment is loaded from the shipment store; it is never mutated by the
// amendment workflow.
type Shipment struct {
	id              kernel.UUID
	clientID        kernel.UUID
	winningVendorID *kernel.UUID

	isConstructed bool
}

// RestoreShipment rebuilds a shipment from persistence. winningVendorID is nil
// while no quote has been selected.
func RestoreShipment(id, clientID kernel.UUID, winningVendorID *kernel.UUID) (*Shipment, error) {
	if err := errors.Join(id.Validate(), clientID.Validate()); err != nil {
		return nil, err
	}
	if winningVendorID != nil {
		if err := winningVendorID.Validate(); err != nil {
			return nil, err
		}
	}
	return &Shipment{
		id:              id,
		clientID:        clientID,
		winningVendorID: winningVendorID,
		isConstructed:   true,
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) ClientID() kernel.UUID {
	return s.clientID
}

// WinningVendorID returns nil when no quote has been accepted yet.
func (s *Shipment) WinningVendorID() *kernel.UUID {
	return s.winningVendorID
}

// IsOwnedBy reports whether clientID raised the shipment.
func (s *Shipment) IsOwnedBy(clientID kernel.UUID) bool {
	return s.clientID.IsEqual(clientID)
}

// IsWonBy reports whether vendorID holds the winning quote.
func (s *Shipment) IsWonBy(vendorID kernel.UUID) bool {
	return s.winningVendorID != nil && s.winningVendorID.IsEqual(vendorID)
}

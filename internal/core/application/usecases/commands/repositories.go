// Package commands contains business operations that modify amendment state.
// Every command follows the same pattern: constructor validation, role check,
// one transaction that loads, decides, conditionally writes and appends
// history, then commit.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// AmendmentRepoFactory provides access to the amendment repository within a transaction.
	AmendmentRepoFactory interface {
		AmendmentRepository() ports.AmendmentRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// UoW spans the amendment and the shipment it belongs to, so that the
	// ownership lookup and the conditional write see the same snapshot.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   sh, err := uow.ShipmentRepository().Get(ctx, shipmentID)
	//   // ... decide, then
	//   err = uow.AmendmentRepository().UpdateWhere(ctx, a, from)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		AmendmentRepoFactory
		ShipmentRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

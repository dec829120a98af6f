package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAmendmentRepository struct{ mock.Mock }

func (m *MockAmendmentRepository) Add(ctx context.Context, a *amendment.Amendment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAmendmentRepository) Get(ctx context.Context, id kernel.UUID) (*amendment.Amendment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*amendment.Amendment)
	return a, args.Error(1)
}

func (m *MockAmendmentRepository) UpdateWhere(
	ctx context.Context,
	a *amendment.Amendment,
	expected amendment.Status,
) error {
	args := m.Called(ctx, a, expected)
	return args.Error(0)
}

func (m *MockAmendmentRepository) AppendHistory(ctx context.Context, entry amendment.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) AmendmentRepository() ports.AmendmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AmendmentRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type tablePolicy map[amendment.Action]actor.Role

func (p tablePolicy) Allows(role actor.Role, action amendment.Action) (bool, error) {
	r, ok := p[action]
	return ok && r == role, nil
}

func newAuthority(t *testing.T) services.TransitionAuthority {
	t.Helper()
	authority, err := services.NewTransitionAuthority(tablePolicy{
		amendment.Create:        actor.Client,
		amendment.AdminApprove:  actor.Admin,
		amendment.AdminReject:   actor.Admin,
		amendment.AdminPush:     actor.Admin,
		amendment.VendorApprove: actor.Vendor,
		amendment.VendorReject:  actor.Vendor,
	})
	require.NoError(t, err)
	return authority
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newShipment(t *testing.T, client actor.Actor, winner *actor.Actor) *shipment.Shipment {
	t.Helper()
	var winnerID *kernel.UUID
	if winner != nil {
		id := winner.ID()
		winnerID = &id
	}
	sh, err := shipment.RestoreShipment(kernel.NewUUID(), client.ID(), winnerID)
	require.NoError(t, err)
	return sh
}

func restoreAmendment(t *testing.T, sh *shipment.Shipment, status amendment.Status) *amendment.Amendment {
	t.Helper()
	at := time.Now().Add(-time.Hour).UTC()
	a, err := amendment.RestoreAmendment(amendment.Snapshot{
		ID:          kernel.NewUUID(),
		ShipmentID:  sh.ID(),
		RequestedBy: sh.ClientID(),
		Reason:      "port delay",
		Status:      status,
		CreatedAt:   at,
		UpdatedAt:   at,
	})
	require.NoError(t, err)
	return a
}

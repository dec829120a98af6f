package commands_test

import (
	"errors"
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateAmendmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	client := newActor(t, actor.Client)
	sh := newShipment(t, client, nil)
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateAmendmentCommand(client, id, sh.ID(), "port delay")
	require.NoError(t, err)

	amendments := new(MockAmendmentRepository)
	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipments).Once(),
		shipments.On("Get", ctx, sh.ID()).Return(sh, nil).Once(),
		uow.On("AmendmentRepository").Return(amendments).Once(),
		amendments.On("Add", ctx, mock.MatchedBy(func(a *amendment.Amendment) bool {
			return a.ID().IsEqual(id) && a.Status() == amendment.Requested
		})).Return(nil).Once(),
		amendments.On("AppendHistory", ctx, mock.MatchedBy(func(e amendment.HistoryEntry) bool {
			return e.Action == amendment.Create && e.To == amendment.Requested && e.ActorID.IsEqual(client.ID())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateAmendmentCommandHandler(factory, newAuthority(t), discardLogger())
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, amendment.Requested, created.Status)
	assert.Equal(t, "port delay", created.Reason)
	assert.Nil(t, created.ExtraCost)
	amendments.AssertExpectations(t)
	shipments.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateAmendmentCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewCreateAmendmentCommandHandler(factory, newAuthority(t), discardLogger())

	_, err := h.Handle(t.Context(), commands.CreateAmendmentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateAmendmentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateAmendmentCommandHandler_Handle_WrongRoleNeverOpensTransaction(t *testing.T) {
	vendor := newActor(t, actor.Vendor)
	cmd, err := commands.NewCreateAmendmentCommand(vendor, kernel.NewUUID(), kernel.NewUUID(), "port delay")
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	h := commands.NewCreateAmendmentCommandHandler(factory, newAuthority(t), discardLogger())

	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateAmendmentCommandHandler_Handle_ShipmentNotOwned(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, actor.Client)
	intruder := newActor(t, actor.Client)
	sh := newShipment(t, owner, nil)
	cmd, err := commands.NewCreateAmendmentCommand(intruder, kernel.NewUUID(), sh.ID(), "port delay")
	require.NoError(t, err)

	shipments := new(MockShipmentRepository)
	amendments := new(MockAmendmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipments).Once(),
		shipments.On("Get", ctx, sh.ID()).Return(sh, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateAmendmentCommandHandler(factory, newAuthority(t), discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	amendments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateAmendmentCommandHandler_Handle_ShipmentMissing(t *testing.T) {
	ctx := t.Context()
	client := newActor(t, actor.Client)
	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateAmendmentCommand(client, kernel.NewUUID(), shipmentID, "port delay")
	require.NoError(t, err)

	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipments).Once(),
		shipments.On("Get", ctx, shipmentID).Return(nil, errs.NewObjectNotFoundError("shipment", shipmentID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateAmendmentCommandHandler(factory, newAuthority(t), discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	uow.AssertExpectations(t)
}

func TestCreateAmendmentCommandHandler_Handle_EmptyReason(t *testing.T) {
	ctx := t.Context()
	client := newActor(t, actor.Client)
	sh := newShipment(t, client, nil)
	cmd, err := commands.NewCreateAmendmentCommand(client, kernel.NewUUID(), sh.ID(), "")
	require.NoError(t, err)

	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipments).Once()
	shipments.On("Get", ctx, sh.ID()).Return(sh, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateAmendmentCommandHandler(factory, newAuthority(t), discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateAmendmentCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	client := newActor(t, actor.Client)
	cmd, err := commands.NewCreateAmendmentCommand(client, kernel.NewUUID(), kernel.NewUUID(), "port delay")
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateAmendmentCommandHandler(factory, newAuthority(t), discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestCreateAmendmentCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	client := newActor(t, actor.Client)
	sh := newShipment(t, client, nil)
	cmd, err := commands.NewCreateAmendmentCommand(client, kernel.NewUUID(), sh.ID(), "port delay")
	require.NoError(t, err)

	amendments := new(MockAmendmentRepository)
	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipments).Once(),
		shipments.On("Get", ctx, sh.ID()).Return(sh, nil).Once(),
		uow.On("AmendmentRepository").Return(amendments).Once(),
		amendments.On("Add", ctx, mock.AnythingOfType("*amendment.Amendment")).Return(nil).Once(),
		amendments.On("AppendHistory", ctx, mock.AnythingOfType("amendment.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateAmendmentCommandHandler(factory, newAuthority(t), discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	uow.AssertExpectations(t)
}

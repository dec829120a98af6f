package queries_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/amendmentrepo"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// QueriesIntegrationTestSuite seeds two shipments:
//
//	shipmentA owned by clientA, won by vendorA
//	shipmentB owned by clientB, won by vendorB
//
// and checks that each view only returns what its actor may see.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	shipments  *shipmentrepo.GormShipmentRepository
	amendments *amendmentrepo.GormAmendmentRepository

	clientA, clientB, vendorA, vendorB, admin actor.Actor
	shipmentA, shipmentB                      kernel.UUID
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.shipments = shipmentrepo.NewGormShipmentRepository(db)
	suite.amendments = amendmentrepo.NewGormAmendmentRepository(db)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(pgtest.Truncate(suite.db))

	suite.clientA = suite.newActor(actor.Client)
	suite.clientB = suite.newActor(actor.Client)
	suite.vendorA = suite.newActor(actor.Vendor)
	suite.vendorB = suite.newActor(actor.Vendor)
	suite.admin = suite.newActor(actor.Admin)

	suite.shipmentA = suite.seedShipment(ctx, suite.clientA, suite.vendorA)
	suite.shipmentB = suite.seedShipment(ctx, suite.clientB, suite.vendorB)
}

func (suite *QueriesIntegrationTestSuite) TestList_AdminDefaultsToRequested() {
	ctx := context.Background()
	requested := suite.seedAmendment(ctx, suite.shipmentA, suite.clientA, amendment.Requested, time.Hour)
	suite.seedAmendment(ctx, suite.shipmentB, suite.clientB, amendment.AdminReview, time.Hour)

	page := suite.list(suite.admin, "", false)

	suite.Require().Len(page.Items, 1)
	suite.True(page.Items[0].ID.IsEqual(requested))
	suite.Equal(queries.DefaultPageLimit, page.Limit)
}

func (suite *QueriesIntegrationTestSuite) TestList_AdminAllNewestFirst() {
	ctx := context.Background()
	older := suite.seedAmendment(ctx, suite.shipmentA, suite.clientA, amendment.Requested, 2*time.Hour)
	newer := suite.seedAmendment(ctx, suite.shipmentB, suite.clientB, amendment.Rejected, time.Hour)

	page := suite.list(suite.admin, queries.StatusFilterAll, false)

	suite.Require().Len(page.Items, 2)
	suite.True(page.Items[0].ID.IsEqual(newer))
	suite.True(page.Items[1].ID.IsEqual(older))
}

func (suite *QueriesIntegrationTestSuite) TestList_ClientSeesOnlyOwnShipments() {
	ctx := context.Background()
	own := suite.seedAmendment(ctx, suite.shipmentA, suite.clientA, amendment.ClientReview, time.Hour)
	suite.seedAmendment(ctx, suite.shipmentA, suite.clientA, amendment.Requested, time.Hour)
	suite.seedAmendment(ctx, suite.shipmentB, suite.clientB, amendment.ClientReview, time.Hour)

	all := suite.list(suite.clientA, "", false)
	pending := suite.list(suite.clientA, "", true)

	suite.Len(all.Items, 2)
	for _, item := range all.Items {
		suite.True(item.ShipmentID.IsEqual(suite.shipmentA))
	}
	suite.Require().Len(pending.Items, 1)
	suite.True(pending.Items[0].ID.IsEqual(own))
}

func (suite *QueriesIntegrationTestSuite) TestList_VendorSeesOnlyWonShipments() {
	ctx := context.Background()
	won := suite.seedAmendment(ctx, suite.shipmentB, suite.clientB, amendment.Accepted, time.Hour)
	suite.seedAmendment(ctx, suite.shipmentA, suite.clientA, amendment.Accepted, time.Hour)

	page := suite.list(suite.vendorB, amendment.Accepted.String(), false)

	suite.Require().Len(page.Items, 1)
	suite.True(page.Items[0].ID.IsEqual(won))
	suite.Require().NotNil(page.Items[0].ExtraCost)
	suite.Equal("500.00", page.Items[0].ExtraCost.String())
	suite.Equal(3, *page.Items[0].DelayDays)
}

func (suite *QueriesIntegrationTestSuite) TestList_Pagination() {
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		suite.seedAmendment(ctx, suite.shipmentA, suite.clientA, amendment.Requested, time.Duration(i)*time.Minute)
	}

	q, err := queries.NewListAmendmentsQuery(suite.admin, "", false, 2, 4)
	suite.Require().NoError(err)
	page, err := queries.NewListAmendmentsQueryHandler(suite.db).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Len(page.Items, 1)
	suite.Equal(2, page.Limit)
	suite.Equal(4, page.Offset)
}

func (suite *QueriesIntegrationTestSuite) TestGet_VisibilityFollowsOwnership() {
	ctx := context.Background()
	id := suite.seedAmendment(ctx, suite.shipmentA, suite.clientA, amendment.ClientReview, time.Hour)
	handler := queries.NewGetAmendmentQueryHandler(suite.db)

	for _, who := range []actor.Actor{suite.admin, suite.clientA, suite.vendorA} {
		q, err := queries.NewGetAmendmentQuery(who, id)
		suite.Require().NoError(err)
		got, err := handler.Handle(ctx, q)
		suite.Require().NoError(err, who.String())
		suite.Equal(amendment.ClientReview, got.Status)
	}

	for _, who := range []actor.Actor{suite.clientB, suite.vendorB} {
		q, err := queries.NewGetAmendmentQuery(who, id)
		suite.Require().NoError(err)
		_, err = handler.Handle(ctx, q)
		suite.ErrorIs(err, errs.ErrObjectNotFound, who.String())
	}
}

func (suite *QueriesIntegrationTestSuite) TestHistory_OrderedAndScoped() {
	ctx := context.Background()
	a, err := amendment.NewAmendment(kernel.NewUUID(), suite.shipmentA, suite.clientA.ID(), "port delay",
		time.Now().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.amendments.Add(ctx, a))
	created, err := amendment.NewHistoryEntry(a, amendment.Unknown, amendment.Create, suite.clientA, "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.amendments.AppendHistory(ctx, created))

	suite.Require().NoError(a.AdminDecide(amendment.AdminApprove, time.Now()))
	suite.Require().NoError(suite.amendments.UpdateWhere(ctx, a, amendment.Requested))
	approved, err := amendment.NewHistoryEntry(a, amendment.Requested, amendment.AdminApprove, suite.admin, "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.amendments.AppendHistory(ctx, approved))

	handler := queries.NewGetAmendmentHistoryQueryHandler(suite.db)
	q, err := queries.NewGetAmendmentHistoryQuery(suite.clientA, a.ID())
	suite.Require().NoError(err)
	entries, err := handler.Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(amendment.Unknown, entries[0].From)
	suite.Equal(amendment.Create, entries[0].Action)
	suite.Equal(amendment.AdminReview, entries[1].To)
	suite.Equal(actor.Admin, entries[1].ActorRole)

	q, err = queries.NewGetAmendmentHistoryQuery(suite.vendorB, a.ID())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, q)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestBacklog_CountsOpenAndStale() {
	ctx := context.Background()
	suite.seedAmendment(ctx, suite.shipmentA, suite.clientA, amendment.Requested, 100*time.Hour)
	suite.seedAmendment(ctx, suite.shipmentA, suite.clientA, amendment.Requested, time.Hour)
	suite.seedAmendment(ctx, suite.shipmentB, suite.clientB, amendment.ClientReview, 80*time.Hour)
	suite.seedAmendment(ctx, suite.shipmentB, suite.clientB, amendment.Accepted, 200*time.Hour)

	q, err := queries.NewGetBacklogQuery(time.Now(), 72*time.Hour)
	suite.Require().NoError(err)
	backlog, err := queries.NewGetBacklogQueryHandler(suite.db).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Equal([]queries.BacklogEntry{
		{Status: amendment.Requested, Open: 2, Stale: 1},
		{Status: amendment.AdminReview, Open: 0, Stale: 0},
		{Status: amendment.ClientReview, Open: 1, Stale: 1},
	}, backlog.Entries)
	open, stale := backlog.Total()
	suite.EqualValues(3, open)
	suite.EqualValues(2, stale)
}

func (suite *QueriesIntegrationTestSuite) list(who actor.Actor, status string, pending bool) queries.ListAmendmentsQueryResponse {
	q, err := queries.NewListAmendmentsQuery(who, status, pending, 0, 0)
	suite.Require().NoError(err)
	page, err := queries.NewListAmendmentsQueryHandler(suite.db).Handle(context.Background(), q)
	suite.Require().NoError(err)
	return page
}

func (suite *QueriesIntegrationTestSuite) newActor(role actor.Role) actor.Actor {
	who, err := actor.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return who
}

func (suite *QueriesIntegrationTestSuite) seedShipment(ctx context.Context, client, vendor actor.Actor) kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.shipments.Add(ctx, id, client.ID()))
	_, err := suite.shipments.AddQuote(ctx, id, vendor.ID(), kernel.ZeroMoney(), true)
	suite.Require().NoError(err)
	return id
}

// seedAmendment walks a fresh amendment to status. All timestamps are set
// age ago, so age controls both ordering and staleness.
func (suite *QueriesIntegrationTestSuite) seedAmendment(
	ctx context.Context,
	shipmentID kernel.UUID,
	client actor.Actor,
	status amendment.Status,
	age time.Duration,
) kernel.UUID {
	at := time.Now().Add(-age)
	a, err := amendment.NewAmendment(kernel.NewUUID(), shipmentID, client.ID(), "port delay", at)
	suite.Require().NoError(err)

	switch status {
	case amendment.Requested:
	case amendment.AdminReview:
		suite.Require().NoError(a.AdminDecide(amendment.AdminApprove, at))
	case amendment.Rejected:
		suite.Require().NoError(a.AdminDecide(amendment.AdminReject, at))
	case amendment.ClientReview, amendment.Accepted:
		suite.Require().NoError(a.AdminDecide(amendment.AdminApprove, at))
		suite.Require().NoError(a.AdminDecide(amendment.AdminPush, at))
		if status == amendment.Accepted {
			cost, costErr := kernel.MoneyFromString("500")
			suite.Require().NoError(costErr)
			suite.Require().NoError(a.VendorApprove(cost, 3, "", at))
		}
	}

	suite.Require().NoError(suite.amendments.Add(ctx, a))
	return a.ID()
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

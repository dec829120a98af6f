package amendmentrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/amendmentrepo"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type AmendmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *amendmentrepo.GormAmendmentRepository

	shipmentID kernel.UUID
	clientID   kernel.UUID
}

func (suite *AmendmentRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.repo = amendmentrepo.NewGormAmendmentRepository(db)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.shipmentID = kernel.NewUUID()
	suite.clientID = kernel.NewUUID()
	suite.Require().NoError(shipmentrepo.NewGormShipmentRepository(suite.db).
		Add(context.Background(), suite.shipmentID, suite.clientID))
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	a := suite.requested()

	suite.Require().NoError(suite.repo.Add(ctx, a))

	got, err := suite.repo.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(a.ID()))
	suite.True(got.ShipmentID().IsEqual(suite.shipmentID))
	suite.True(got.RequestedBy().IsEqual(suite.clientID))
	suite.Equal(amendment.Requested, got.Status())
	suite.Nil(got.ExtraCost())
	suite.Nil(got.DelayDays())
	suite.Nil(got.VendorReplyAt())
	suite.WithinDuration(a.CreatedAt(), got.CreatedAt(), time.Millisecond)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestAdd_DuplicateIDFails() {
	ctx := context.Background()
	a := suite.requested()
	suite.Require().NoError(suite.repo.Add(ctx, a))

	suite.Error(suite.repo.Add(ctx, a))
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestGet_Missing() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestUpdateWhere_FullLifecycleStoresImpact() {
	ctx := context.Background()
	a := suite.requested()
	suite.Require().NoError(suite.repo.Add(ctx, a))

	suite.Require().NoError(a.AdminDecide(amendment.AdminApprove, time.Now()))
	suite.Require().NoError(suite.repo.UpdateWhere(ctx, a, amendment.Requested))
	suite.Require().NoError(a.AdminDecide(amendment.AdminPush, time.Now()))
	suite.Require().NoError(suite.repo.UpdateWhere(ctx, a, amendment.AdminReview))

	cost, err := kernel.MoneyFromString("500")
	suite.Require().NoError(err)
	suite.Require().NoError(a.VendorApprove(cost, 3, "crane hire", time.Now()))
	suite.Require().NoError(suite.repo.UpdateWhere(ctx, a, amendment.ClientReview))

	got, err := suite.repo.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(amendment.Accepted, got.Status())
	suite.Require().NotNil(got.ExtraCost())
	suite.Equal("500.00", got.ExtraCost().String())
	suite.Equal(3, *got.DelayDays())
	suite.Equal("crane hire", got.VendorReason())
	suite.NotNil(got.VendorReplyAt())
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestUpdateWhere_StaleExpectedStatusConflicts() {
	ctx := context.Background()
	a := suite.requested()
	suite.Require().NoError(suite.repo.Add(ctx, a))
	suite.Require().NoError(a.AdminDecide(amendment.AdminReject, time.Now()))

	err := suite.repo.UpdateWhere(ctx, a, amendment.AdminReview)

	suite.ErrorIs(err, errs.ErrConflict)
	got, getErr := suite.repo.Get(ctx, a.ID())
	suite.Require().NoError(getErr)
	suite.Equal(amendment.Requested, got.Status(), "a lost race leaves the row untouched")
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestUpdateWhere_MissingRow() {
	a := suite.requested()

	err := suite.repo.UpdateWhere(context.Background(), a, amendment.Requested)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

// The CHECK constraint backs up the aggregate: a direct write of cost on a
// non-accepted row is refused by the database.
func (suite *AmendmentRepositoryIntegrationTestSuite) TestImpactConstraintEnforcedByDatabase() {
	ctx := context.Background()
	a := suite.requested()
	suite.Require().NoError(suite.repo.Add(ctx, a))

	err := suite.db.Exec(
		"UPDATE amendments SET extra_cost = 10, delay_days = 1 WHERE id = ?", a.ID().Bytes()).Error

	suite.Require().Error(err)
	suite.Contains(err.Error(), "chk_amendments_impact_iff_accepted")
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestAppendHistory_RoundTrip() {
	ctx := context.Background()
	a := suite.requested()
	suite.Require().NoError(suite.repo.Add(ctx, a))
	who, err := actor.NewActor(suite.clientID, actor.Client)
	suite.Require().NoError(err)
	entry, err := amendment.NewHistoryEntry(a, amendment.Unknown, amendment.Create, who, "")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repo.AppendHistory(ctx, entry))

	var rows []amendmentrepo.HistoryDTO
	suite.Require().NoError(suite.db.Where("amendment_id = ?", a.ID().Bytes()).Find(&rows).Error)
	suite.Require().Len(rows, 1)
	suite.Equal("unknown", rows[0].FromStatus)
	suite.Equal("requested", rows[0].ToStatus)
	suite.Equal("create", rows[0].Action)
	suite.Equal("client", rows[0].ActorRole)
	suite.Equal(suite.clientID.Bytes(), rows[0].ActorID)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) requested() *amendment.Amendment {
	a, err := amendment.NewAmendment(kernel.NewUUID(), suite.shipmentID, suite.clientID, "port delay", time.Now())
	suite.Require().NoError(err)
	return a
}

func TestAmendmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AmendmentRepositoryIntegrationTestSuite))
}

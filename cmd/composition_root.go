package cmd

import (
	"context"
	"log/slog"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/capability"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	authority  services.TransitionAuthority
	logger     *slog.Logger
}

// NewCompositionRoot loads the capability policy (CAPABILITY_POLICY_PATH or
// the embedded default) and wires it into the transition authority.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	policy, err := capability.Load(cfg.CapabilityPolicyPath, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	authority, err := services.NewTransitionAuthority(policy)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		authority:  authority,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateAmendmentCommandHandler() commands.CreateAmendmentCommandHandler {
	return commands.NewCreateAmendmentCommandHandler(c.newUoWFactory(), c.authority, c.logger)
}

func (c *CompositionRoot) CreateAdminDecideCommandHandler() commands.AdminDecideCommandHandler {
	return commands.NewAdminDecideCommandHandler(c.newUoWFactory(), c.authority, c.logger)
}

func (c *CompositionRoot) CreateVendorRespondCommandHandler() commands.VendorRespondCommandHandler {
	return commands.NewVendorRespondCommandHandler(c.newUoWFactory(), c.authority, c.logger)
}

func (c *CompositionRoot) CreateListAmendmentsQueryHandler() queries.ListAmendmentsQueryHandler {
	return queries.NewListAmendmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAmendmentQueryHandler() queries.GetAmendmentQueryHandler {
	return queries.NewGetAmendmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAmendmentHistoryQueryHandler() queries.GetAmendmentHistoryQueryHandler {
	return queries.NewGetAmendmentHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBacklogQueryHandler() queries.GetBacklogQueryHandler {
	return queries.NewGetBacklogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateAmendmentCommandHandler(),
		c.CreateAdminDecideCommandHandler(),
		c.CreateVendorRespondCommandHandler(),
		c.CreateListAmendmentsQueryHandler(),
		c.CreateGetAmendmentQueryHandler(),
		c.CreateGetAmendmentHistoryQueryHandler(),
	)
}

// CreateRouter builds the echo instance serving the API.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	rate := httpin.RateLimitConfig{Rate: c.cfg.RateLimit.Rate, RedisURL: c.cfg.RedisURL()}
	routerCfg := httpin.RouterConfig{JWTSecret: []byte(c.cfg.JWTSecret)}
	if c.cfg.RateLimit.Enabled {
		routerCfg.RateLimit = &rate
	}
	return httpin.NewRouter(ctx, c.CreateServer(), routerCfg, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetBacklogQueryHandler(),
		c.cfg.BacklogJobSchedule,
		c.cfg.StaleAfter,
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

package cmd

import (
	"log/slog"
	"time"

	httpadapter "cargo/internal/adapters/in/http"
	"cargo/internal/adapters/out/eventbus"
	"cargo/internal/adapters/out/kafka"
	"cargo/internal/adapters/out/postgres"
	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/services"
	"cargo/internal/core/ports"
	"cargo/internal/jobs"
	"cargo/internal/pkg/auth"

	"gorm.io/gorm"
)

// LedgerRelayCursor names the relay position stored in ledger_cursors.
const LedgerRelayCursor = "kafka:order-status-ledger"

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	events     *eventbus.Bus
	policy     services.OrderAccessPolicy
	clock      ports.Clock
	hasher     *auth.BcryptHasher
	tokens     *auth.TokenIssuer
	publisher  *kafka.LedgerPublisher
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	events := eventbus.New(logger)
	events.Subscribe(eventbus.NewAuditLogObserver(logger))

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, events),
		events:     events,
		policy:     services.NewOrderAccessPolicy(),
		clock:      ports.ClockFunc(time.Now),
		hasher:     auth.NewBcryptHasher(0),
		tokens:     tokens,
	}
	if cfg.RelayEnabled() {
		c.publisher = kafka.NewLedgerPublisher(cfg.KafkaBrokers, cfg.KafkaLedgerTopic)
	}
	return c, nil
}

// Events lets callers subscribe further in-process observers.
func (c *CompositionRoot) Events() *eventbus.Bus { return c.events }

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher, c.clock)
}

func (c *CompositionRoot) CreateChangeUserRoleCommandHandler() commands.ChangeUserRoleCommandHandler {
	return commands.NewChangeUserRoleCommandHandler(c.userUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateBootstrapAdminCommandHandler() commands.BootstrapAdminCommandHandler {
	return commands.NewBootstrapAdminCommandHandler(c.userUoWFactory(), c.hasher, c.clock)
}

func (c *CompositionRoot) CreateRelayLedgerCommandHandler(publisher ports.LedgerPublisher) commands.RelayLedgerCommandHandler {
	return commands.NewRelayLedgerCommandHandler(c.ledgerUoWFactory(), publisher, c.clock)
}

func (c *CompositionRoot) CreateGetOrderTimelineQueryHandler() queries.GetOrderTimelineQueryHandler {
	return queries.NewGetOrderTimelineQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateAuthenticateUserQueryHandler() queries.AuthenticateUserQueryHandler {
	return queries.NewAuthenticateUserQueryHandler(c.gormDB, c.hasher)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateRegisterUserCommandHandler(),
		c.CreateChangeUserRoleCommandHandler(),
		c.CreateCreateOrderCommandHandler(),
		c.CreateAdvanceOrderStatusCommandHandler(),
		c.CreateAuthenticateUserQueryHandler(),
		c.CreateListUsersQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderTimelineQueryHandler(),
		c.tokens,
	)
}

func (c *CompositionRoot) TokenIssuer() *auth.TokenIssuer { return c.tokens }

// CreateJobManager returns the scheduled jobs. The ledger relay is left out
// when no Kafka brokers are configured.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	if c.publisher == nil {
		return jobs.NewJobManager(), nil
	}

	cmd, err := commands.NewRelayLedgerCommand(LedgerRelayCursor, c.cfg.LedgerRelayBatch, c.cfg.LedgerRelaySettle)
	if err != nil {
		return nil, err
	}
	handler := c.CreateRelayLedgerCommandHandler(c.publisher)
	return jobs.NewJobManager(jobs.NewLedgerRelayJob(&handler, cmd, jobs.DefaultLedgerRelaySchedule, c.logger)), nil
}

// Close releases the Kafka writer, if any.
func (c *CompositionRoot) Close() error {
	if c.publisher == nil {
		return nil
	}
	return c.publisher.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

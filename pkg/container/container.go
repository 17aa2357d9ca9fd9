package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"shopdesk-backend/internal/config"
	infraCache "shopdesk-backend/internal/infrastructure/cache"
	"shopdesk-backend/internal/infrastructure/database"
	"shopdesk-backend/pkg/cache"
	"shopdesk-backend/pkg/jwt"

	alertHandler "shopdesk-backend/internal/domains/alert/handler"
	alertRepo "shopdesk-backend/internal/domains/alert/repository"
	alertService "shopdesk-backend/internal/domains/alert/service"
	analyticsHandler "shopdesk-backend/internal/domains/analytics/handler"
	analyticsService "shopdesk-backend/internal/domains/analytics/service"
	invHandler "shopdesk-backend/internal/domains/inventory/handler"
	invRepo "shopdesk-backend/internal/domains/inventory/repository"
	invService "shopdesk-backend/internal/domains/inventory/service"
	poHandler "shopdesk-backend/internal/domains/purchasing/handler"
	poRepo "shopdesk-backend/internal/domains/purchasing/repository"
	poService "shopdesk-backend/internal/domains/purchasing/service"
	reorderHandler "shopdesk-backend/internal/domains/reorder/handler"
	reorderRepo "shopdesk-backend/internal/domains/reorder/repository"
	reorderService "shopdesk-backend/internal/domains/reorder/service"
)

// Container is the root of the dependency graph. Initialization order is
// config, infrastructure, repositories, services, handlers; a wrong order
// is a nil dereference at startup, not in production.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	InventoryRepo  invRepo.RepositoryInterface
	AlertRepo      alertRepo.RepositoryInterface
	ReorderRepo    reorderRepo.RepositoryInterface
	PurchasingRepo poRepo.RepositoryInterface

	InventoryService  invService.ServiceInterface
	AlertService      alertService.ServiceInterface
	RuleService       reorderService.RuleServiceInterface
	Executor          reorderService.ExecutorInterface
	PurchasingService poService.ServiceInterface
	AnalyticsService  analyticsService.ServiceInterface

	InventoryHandler  *invHandler.Handler
	AlertHandler      *alertHandler.AlertHandler
	ReorderHandler    *reorderHandler.ReorderHandler
	PurchasingHandler *poHandler.OrderHandler
	AnalyticsHandler  *analyticsHandler.AnalyticsHandler
}

// NewContainer builds and wires the whole application.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg
	log.Printf("config loaded (environment: %s)", cfg.App.Environment)

	db := database.NewPostgresDB(cfg.Database.PoolConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("database connected")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Redis is a read accelerator here, not a source of truth.
		log.Printf("redis connection failed (non-critical): %v", err)
	} else {
		log.Println("redis connected")
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.InventoryRepo = invRepo.NewRepository(pool)
	c.AlertRepo = alertRepo.NewRepository(pool)
	c.ReorderRepo = reorderRepo.NewRepository(pool)
	c.PurchasingRepo = poRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.InventoryService = invService.NewService(c.InventoryRepo, c.Cache, cfg.Reorder)
	c.AlertService = alertService.NewService(c.InventoryService, c.AlertRepo, c.ReorderRepo)
	c.RuleService = reorderService.NewRuleService(c.ReorderRepo, c.InventoryRepo, c.Cache, cfg.Reorder.DefaultLeadTimeDays)
	c.Executor = reorderService.NewExecutor(c.ReorderRepo, c.InventoryService, c.PurchasingRepo, c.Cache, cfg.Reorder.DefaultUnitCost)
	c.PurchasingService = poService.NewService(c.PurchasingRepo, c.Cache)
	c.AnalyticsService = analyticsService.NewService(c.InventoryService)
}

func (c *Container) initHandlers() {
	c.InventoryHandler = invHandler.NewHandler(c.InventoryService)
	c.AlertHandler = alertHandler.NewHandler(c.AlertService)
	c.ReorderHandler = reorderHandler.NewHandler(c.RuleService, c.Executor)
	c.PurchasingHandler = poHandler.NewHandler(c.PurchasingService)
	c.AnalyticsHandler = analyticsHandler.NewHandler(c.AnalyticsService)
}

// Close releases infrastructure connections.
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("failed to close redis: %v", err)
		}
	}
}

package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"realestate-listing-api/internal/config"
	"realestate-listing-api/internal/infrastructure/database"

	listingHandler "realestate-listing-api/internal/domains/listing/handler"
	listingRepo "realestate-listing-api/internal/domains/listing/repository"
	listingService "realestate-listing-api/internal/domains/listing/service"
	pkgdb "realestate-listing-api/pkg/database"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB // nil khi DB_DRIVER=memory

	// Repository layer
	ListingRepo listingRepo.Repository
	UnitOfWork  listingRepo.UnitOfWork

	// Service layer
	ListingService listingService.Service

	// Handler layer
	ListingHandler *listingHandler.ListingHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Storage (Postgres pool hoặc memory store)
// 3. Services
// 4. Handlers
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("[CONTAINER] Initializing DI container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: STORAGE
	// ========================================
	switch cfg.Database.Driver {
	case config.DriverMemory:
		c.initMemoryStorage()
	default:
		if err := c.initPostgresStorage(); err != nil {
			return nil, err
		}
	}

	// ========================================
	// STEP 2: SERVICES
	// ========================================
	c.ListingService = listingService.NewService(c.ListingRepo, c.UnitOfWork)

	// ========================================
	// STEP 3: HANDLERS
	// ========================================
	c.ListingHandler = listingHandler.NewListingHandler(c.ListingService)

	log.Info().Str("driver", cfg.Database.Driver).Msg("[CONTAINER] DI container initialized")
	return c, nil
}

func (c *Container) initPostgresStorage() error {
	log.Info().Msg("[CONTAINER] Connecting to PostgreSQL")

	dbConfig, err := config.LoadDatabaseConfig(c.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	// Connect với timeout 30s
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.Database.AutoMigrate {
		if err := listingRepo.EnsureSchema(ctx, db.Pool); err != nil {
			db.Close()
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		log.Info().Msg("[CONTAINER] Schema ensured")
	}

	c.DB = db
	c.ListingRepo = listingRepo.NewPostgresRepository(db.Pool)
	c.UnitOfWork = pkgdb.NewUnitOfWork(db.Pool)
	return nil
}

func (c *Container) initMemoryStorage() {
	log.Warn().Msg("[CONTAINER] Using in-memory storage, data is lost on restart")

	store := listingRepo.NewMemoryStore()
	c.ListingRepo = listingRepo.NewMemoryRepository(store)
	c.UnitOfWork = listingRepo.NewMemoryUnitOfWork(store)
}

// HealthCheck: memory store luôn healthy
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.DB == nil {
		return nil
	}
	return c.DB.HealthCheck(ctx)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up resources")

	if c.DB != nil {
		c.DB.Close()
	}
}

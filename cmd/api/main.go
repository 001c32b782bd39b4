package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/hanzong05/kitapos-middleware/internal/api/http"
	"github.com/hanzong05/kitapos-middleware/internal/api/http/handlers"
	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/config"
	"github.com/hanzong05/kitapos-middleware/internal/events"
	"github.com/hanzong05/kitapos-middleware/internal/observability"
	"github.com/hanzong05/kitapos-middleware/internal/persistence"
	"github.com/hanzong05/kitapos-middleware/internal/repository"
	"github.com/hanzong05/kitapos-middleware/internal/service"
	"github.com/hanzong05/kitapos-middleware/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The postgres handle connects lazily on first use; a database that is
	// down at boot surfaces as 503s, not a crashed process.
	pg := persistence.NewPostgres(cfg.Postgres, logger)
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg, logger); err != nil {
			logger.Warn("migrations deferred", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	alertService := service.NewAlertService(dispatcher, logger, cfg.Alerts)
	worker.StartAlertWorker(alertService)

	userRepo := repository.NewUserRepository(pg)
	companyRepo := repository.NewCompanyRepository(pg)
	storeRepo := repository.NewStoreRepository(pg)
	staffRepo := repository.NewStaffRepository(pg)
	categoryRepo := repository.NewCategoryRepository(pg)
	productRepo := repository.NewProductRepository(pg)
	inventoryRepo := repository.NewInventoryRepository(pg)

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	companyService := service.NewCompanyService(companyRepo)
	storeService := service.NewStoreService(storeRepo, dispatcher)
	staffService := service.NewStaffService(staffRepo)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, redis, cfg.Redis.CacheTTL, logger)
	inventoryService := service.NewInventoryService(inventoryRepo, productRepo, dispatcher, catalogService, cfg.Alerts.LowStockThreshold)

	gate := auth.NewGate(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:        handlers.NewAuthHandler(authService),
		Users:       handlers.NewUsersHandler(userService),
		Companies:   handlers.NewCompaniesHandler(companyService),
		Stores:      handlers.NewStoresHandler(storeService),
		Staff:       handlers.NewStaffHandler(staffService),
		Categories:  handlers.NewCategoriesHandler(catalogService),
		Products:    handlers.NewProductsHandler(catalogService),
		Inventory:   handlers.NewInventoryHandler(inventoryService),
		Gate:        gate,
		RateLimiter: httptransport.AuthRateLimiter(cfg.App.AuthRatePerSecond, cfg.App.AuthRateBurst),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/rijan-rayamajhi/gem-business/internal/api/http"
	"github.com/rijan-rayamajhi/gem-business/internal/api/http/handlers"
	"github.com/rijan-rayamajhi/gem-business/internal/auth"
	"github.com/rijan-rayamajhi/gem-business/internal/config"
	"github.com/rijan-rayamajhi/gem-business/internal/events"
	"github.com/rijan-rayamajhi/gem-business/internal/observability"
	"github.com/rijan-rayamajhi/gem-business/internal/persistence"
	"github.com/rijan-rayamajhi/gem-business/internal/repository"
	"github.com/rijan-rayamajhi/gem-business/internal/service"
	"github.com/rijan-rayamajhi/gem-business/internal/storage"
	"github.com/rijan-rayamajhi/gem-business/internal/upload"
	"github.com/rijan-rayamajhi/gem-business/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	objectStore, err := storage.NewDiskStore(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object store", zap.Error(err))
	}
	uploads := upload.NewOrchestrator(objectStore, cfg.Upload)

	pool := pg.PoolHandle()
	merchantRepo := repository.NewMerchantRepository(pool)
	businessRepo := repository.NewBusinessRepository(pool, logger)
	listingRepo := repository.NewListingRepository(pool, logger)
	eventRepo := repository.NewEventRepository(pool, logger)
	kycRepo := repository.NewKYCRepository(pool, logger)
	campaignRepo := repository.NewCampaignRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	merchantService := service.NewMerchantService(cfg.Auth, merchantRepo)
	flashSaleService := service.NewFlashSaleService(cfg.FlashSale, service.FlashSaleDependencies{
		CampaignRepo: campaignRepo,
		Cache:        redis.Client,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	businessService := service.NewBusinessService(service.BusinessDependencies{
		BusinessRepo: businessRepo,
		Uploads:      uploads,
		Dispatcher:   dispatcher,
	})
	listingService := service.NewListingService(service.ListingDependencies{
		ListingRepo: listingRepo,
		FlashSales:  flashSaleService,
		Uploads:     uploads,
		Dispatcher:  dispatcher,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:  eventRepo,
		Uploads:    uploads,
		Dispatcher: dispatcher,
	})
	kycService := service.NewKYCService(service.KYCDependencies{
		KYCRepo:      kycRepo,
		BusinessRepo: businessRepo,
		Uploads:      uploads,
		Dispatcher:   dispatcher,
	})

	authMiddleware := auth.NewAuthMiddleware(merchantService.TokenManager(), merchantRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Merchants:      handlers.NewMerchantsHandler(merchantService),
		Business:       handlers.NewBusinessHandler(businessService),
		Listings:       handlers.NewListingsHandler(listingService),
		Events:         handlers.NewEventsHandler(eventService),
		KYC:            handlers.NewKYCHandler(kycService),
		FlashSales:     handlers.NewFlashSaleHandler(flashSaleService),
		AuthMiddleware: authMiddleware,
		StaticFilesDir: objectStore.BaseDir(),
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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/phoenix-adventures/trip-service/internal/api/http"
	"github.com/phoenix-adventures/trip-service/internal/api/http/handlers"
	"github.com/phoenix-adventures/trip-service/internal/auth"
	"github.com/phoenix-adventures/trip-service/internal/config"
	"github.com/phoenix-adventures/trip-service/internal/events"
	"github.com/phoenix-adventures/trip-service/internal/jobs"
	"github.com/phoenix-adventures/trip-service/internal/observability"
	"github.com/phoenix-adventures/trip-service/internal/persistence"
	"github.com/phoenix-adventures/trip-service/internal/repository"
	"github.com/phoenix-adventures/trip-service/internal/service"
	"github.com/phoenix-adventures/trip-service/internal/storage"
	"github.com/phoenix-adventures/trip-service/internal/worker"
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

	store, err := storage.NewLocalStore(cfg.Storage.BaseURL, cfg.Storage.UploadsDir)
	if err != nil {
		logger.Fatal("failed to init upload storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	tripRepo := repository.NewTripRepository(pool)
	cusTripRepo := repository.NewCustomizedTripRepository(pool)
	receiptRepo := repository.NewReceiptRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	mailer := service.NewSendGridMailer(cfg.Mail.SendGridAPIKey, cfg.Mail.FromEmail, cfg.Mail.FromName)
	notificationService := service.NewNotificationService(mailer, logger, cfg.Mail.PaymentNumber)
	worker.StartNotificationWorker(notificationService, dispatcher)

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	userService := service.NewUserService(userRepo)
	tripService := service.NewTripService(tripRepo, userRepo, receiptRepo, store, dispatcher)
	cusTripService := service.NewCustomizedTripService(cusTripRepo, userRepo, receiptRepo, store, dispatcher)
	renderer := service.NewReceiptRenderer()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	scheduler := jobs.NewScheduler(logger)
	if err := scheduler.RegisterPurgeInactiveUsers(cfg.Scheduler, userRepo); err != nil {
		logger.Fatal("failed to schedule inactive user purge", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 25 * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Static("/uploads", cfg.Storage.UploadsDir)

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(authService, userService)
	tripsHandler := handlers.NewTripsHandler(tripService, renderer)
	cusTripsHandler := handlers.NewCustomizedTripsHandler(cusTripService, renderer)
	userResources := handlers.NewResourcesHandler(
		service.NewResourceService(repository.ResourceUsers,
			repository.NewResourceRepository(pool, repository.ResourceUsers)))
	tripResources := handlers.NewResourcesHandler(
		service.NewResourceService(repository.ResourceTrips,
			repository.NewResourceRepository(pool, repository.ResourceTrips)))
	cusTripResources := handlers.NewResourcesHandler(
		service.NewResourceService(repository.ResourceCustomizedTrips,
			repository.NewResourceRepository(pool, repository.ResourceCustomizedTrips)))
	receiptResources := handlers.NewResourcesHandler(
		service.NewResourceService(repository.ResourceReceipts,
			repository.NewResourceRepository(pool, repository.ResourceReceipts)))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:                  healthHandler,
		Users:                   usersHandler,
		Trips:                   tripsHandler,
		CustomizedTrips:         cusTripsHandler,
		UserResources:           userResources,
		TripResources:           tripResources,
		CustomizedTripResources: cusTripResources,
		ReceiptResources:        receiptResources,
		AuthMiddleware:          authMiddleware,
		RateLimiter:             httptransport.RateLimiter(cfg.RateLimit, redis.NewLimiterStorage()),
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

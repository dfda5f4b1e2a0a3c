package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"makemeet/internal/api"
	"makemeet/internal/config"
	"makemeet/internal/database"
	"makemeet/internal/middleware"
	"makemeet/internal/monitoring"
	"makemeet/internal/repository"
	"makemeet/internal/service"
	"makemeet/internal/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/postgres/v3"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.NewConfig()

	telemetry, err := monitoring.NewOpenTelemetry(cfg.Telemetry)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	logger := telemetry.Logger()

	// Connect to the database
	db, err := database.NewPostgresDatabase(cfg.Database.DSN(), cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize repository
	repo := repository.NewMeetingRepository(db)

	// Run database migrations
	if err := repo.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis-backed credential attempt limiting; disabled without REDIS_ADDR
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	attempts := service.NewRateLimiter(redisClient, cfg.RateLimit)

	handler := api.NewHandler(repo, validator.New(), attempts, telemetry)
	healthHandler := api.NewHealthHandler(repo)

	// Set up Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(middleware.Logger(logger))
	app.Use(middleware.SecurityHeaders())

	// Rate limiting for meeting creation, persisted across restarts
	limiterStorage := postgres.New(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Name,
		Username: cfg.Database.User,
		Password: cfg.Database.Password,
		Table:    "rate_limits",
		Reset:    false,
	})
	createLimiter := limiter.New(limiter.Config{
		Max:        cfg.RateLimit.CreateMax,
		Expiration: cfg.RateLimit.CreateWindow,
		Storage:    limiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(api.ErrorResponse{
				CustomMakemeetErrorMessage: "Too many meetings created. Please try again later.",
			})
		},
	})

	app.Get("/health", healthHandler.Healthy)

	apiGroup := app.Group("/api")
	apiGroup.Post("/meetings", createLimiter, handler.CreateMeeting)
	apiGroup.Get("/meetings/:meetingId", handler.GetMeeting)
	apiGroup.Get("/meetings/:meetingId/aggregate", handler.GetAggregate)
	apiGroup.Put("/meetings/:meetingId/availability/:memberId", handler.PutAvailability)
	apiGroup.Post("/meetings/:meetingId/register", handler.Register)
	apiGroup.Post("/meetings/:meetingId/login", handler.Login)

	// Graceful shutdown on SIGINT/SIGTERM
	shutdownDone := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutting down", "signal", sig.String())

		if err := app.Shutdown(); err != nil {
			logger.Error("Failed to shut down server", "error", err)
		}
		if err := telemetry.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shut down telemetry", "error", err)
		}
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
		close(shutdownDone)
	}()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Info("Listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	<-shutdownDone
}

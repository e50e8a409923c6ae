package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/procurement-registry/backend/internal/config"
	"github.com/procurement-registry/backend/internal/db"
	"github.com/procurement-registry/backend/internal/events"
	apphttp "github.com/procurement-registry/backend/internal/http"
	"github.com/procurement-registry/backend/internal/http/handlers"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"github.com/procurement-registry/backend/internal/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	contractRepo := repositories.NewContractRepo(pool)
	amendmentRepo := repositories.NewAmendmentRepo(pool)
	consultationRepo := repositories.NewConsultationRepo(pool)
	mailRepo := repositories.NewMailRepo(pool)
	archiveRepo := repositories.NewArchiveRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Audit trail
	recorder := services.NewAuditRecorder(auditRepo, publisher, log)
	auditQueries := services.NewAuditQueryService(auditRepo, log)

	// Services
	contractService := services.NewContractService(contractRepo, recorder, log)
	amendmentService := services.NewAmendmentService(amendmentRepo, contractRepo, recorder, log)
	consultationService := services.NewConsultationService(consultationRepo, recorder, log)
	mailService := services.NewMailService(mailRepo, archiveRepo, recorder, log)
	archiveService := services.NewArchiveService(archiveRepo, recorder, log)

	// Seed the admin account when credentials are configured
	if cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("failed to hash admin password", zap.Error(err))
		}
		if err := userRepo.EnsureExists(ctx, cfg.AdminUsername, string(hash), models.RoleAdmin); err != nil {
			log.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, recorder, cfg, log)
	contractHandler := handlers.NewContractHandler(contractService, log)
	amendmentHandler := handlers.NewAmendmentHandler(amendmentService, log)
	consultationHandler := handlers.NewConsultationHandler(consultationService, log)
	mailHandler := handlers.NewMailHandler(mailService, log)
	archiveHandler := handlers.NewArchiveHandler(archiveService, log)
	auditHandler := handlers.NewAuditHandler(auditQueries, log)
	feedHub := handlers.NewFeedHub(cfg, subscriber, log)

	// Start live feed hub
	feedHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, recorder,
		authHandler, contractHandler, amendmentHandler, consultationHandler,
		mailHandler, archiveHandler, auditHandler, feedHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/procurement-registry/backend/internal/config"
	"github.com/procurement-registry/backend/internal/http/dto"
	"github.com/procurement-registry/backend/internal/http/handlers"
	"github.com/procurement-registry/backend/internal/middleware"
	"github.com/procurement-registry/backend/internal/services"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	recorder *services.AuditRecorder,
	authHandler *handlers.AuthHandler,
	contractHandler *handlers.ContractHandler,
	amendmentHandler *handlers.AmendmentHandler,
	consultationHandler *handlers.ConsultationHandler,
	mailHandler *handlers.MailHandler,
	archiveHandler *handlers.ArchiveHandler,
	auditHandler *handlers.AuditHandler,
	feedHub *handlers.FeedHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", AuditDropped: recorder.Dropped()})
	})

	api := app.Group("/api/v1")

	// Auth (public, rate-limited)
	api.Post("/auth/login", middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute), authHandler.Login)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Contracts
	protected.Post("/contracts", contractHandler.Create)
	protected.Get("/contracts", contractHandler.List)
	protected.Get("/contracts/:id", contractHandler.Get)
	protected.Put("/contracts/:id", contractHandler.Update)
	protected.Delete("/contracts/:id", contractHandler.Delete)
	protected.Post("/contracts/:id/submit", contractHandler.Submit)
	protected.Post("/contracts/:id/approve", contractHandler.Approve)
	protected.Post("/contracts/:id/reject", contractHandler.Reject)
	protected.Post("/contracts/:id/archive", contractHandler.Archive)
	protected.Post("/contracts/:id/restore", contractHandler.Restore)
	protected.Post("/contracts/:id/cancel", contractHandler.Cancel)

	// Amendments
	protected.Post("/amendments", amendmentHandler.Create)
	protected.Get("/amendments/:id", amendmentHandler.Get)
	protected.Get("/contracts/:contractId/amendments", amendmentHandler.ListByContract)
	protected.Post("/amendments/:id/approve", amendmentHandler.Approve)
	protected.Post("/amendments/:id/reject", amendmentHandler.Reject)
	protected.Delete("/amendments/:id", amendmentHandler.Delete)

	// Consultations
	protected.Post("/consultations", consultationHandler.Create)
	protected.Get("/consultations", consultationHandler.List)
	protected.Get("/consultations/:id", consultationHandler.Get)
	protected.Put("/consultations/:id", consultationHandler.Update)
	protected.Post("/consultations/:id/award", consultationHandler.Award)
	protected.Post("/consultations/:id/cancel", consultationHandler.Cancel)

	// Mail registry
	protected.Post("/mail", mailHandler.Register)
	protected.Get("/mail", mailHandler.List)
	protected.Get("/mail/:id", mailHandler.Get)
	protected.Put("/mail/:id", mailHandler.Update)
	protected.Post("/mail/:id/archive", mailHandler.Archive)

	// Archive locations
	protected.Post("/archive-locations", archiveHandler.Create)
	protected.Get("/archive-locations", archiveHandler.List)
	protected.Get("/archive-locations/:id", archiveHandler.Get)
	protected.Put("/archive-locations/:id", archiveHandler.Update)
	protected.Delete("/archive-locations/:id", archiveHandler.Delete)

	// Audit trail (admin only)
	admin := protected.Group("", middleware.AdminMiddleware())
	admin.Get("/audit/entity/:name/:id", auditHandler.EntityHistory)
	admin.Get("/audit/user/:username", auditHandler.UserHistory)
	admin.Get("/audit/range", auditHandler.Range)
	admin.Get("/audit/failed", auditHandler.Failed)
	admin.Get("/audit/activity/:username", auditHandler.Activity)

	// WebSocket live feed
	app.Use("/ws/audit", handlers.WSUpgradeMiddleware())
	app.Get("/ws/audit", websocket.New(feedHub.HandleWS))
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/procurement-registry/backend/internal/auth"
	"github.com/procurement-registry/backend/internal/config"
	"github.com/procurement-registry/backend/internal/models"
	"go.uber.org/zap"
)

const (
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxSessionID = "session_id"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxUsername, claims.Username)
		c.Locals(CtxRole, claims.Role)
		c.Locals(CtxSessionID, claims.SessionID)

		return c.Next()
	}
}

func GetUsername(c *fiber.Ctx) string {
	username, _ := c.Locals(CtxUsername).(string)
	return username
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxRole).(string)
	return role
}

func GetSessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals(CtxSessionID).(string)
	return sessionID
}

// GetActor assembles the audit actor for the current request: identity
// from JWT claims, ip/user-agent from the transport.
func GetActor(c *fiber.Ctx) models.Actor {
	return models.Actor{
		Username:  GetUsername(c),
		IPAddress: c.IP(),
		UserAgent: string(c.Request().Header.UserAgent()),
		SessionID: GetSessionID(c),
	}
}

// AdminMiddleware restricts a route group to admin users.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/procurement-registry/backend/internal/auth"
	"github.com/procurement-registry/backend/internal/config"
	"github.com/procurement-registry/backend/internal/http/dto"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"github.com/procurement-registry/backend/internal/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = errors.New("invalid credentials")

type AuthHandler struct {
	userRepo *repositories.UserRepo
	recorder *services.AuditRecorder
	cfg      *config.Config
	log      *zap.Logger
}

func NewAuthHandler(userRepo *repositories.UserRepo, recorder *services.AuditRecorder, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, recorder: recorder, cfg: cfg, log: log}
}

// Login checks credentials and issues a session token. Both outcomes are
// audited; a failed attempt references the claimed username.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "username and password are required"})
	}

	actor := models.Actor{
		Username:  req.Username,
		IPAddress: c.IP(),
		UserAgent: string(c.Request().Header.UserAgent()),
	}

	user, err := h.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		h.recorder.Record(c.Context(), services.NewAuditEntry("Session", req.Username, models.AuditActionCreate).
			Actor(actor).
			Failed(errInvalidCredentials).
			Module("auth", "login"))
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid credentials"})
	}

	sessionID := uuid.New().String()
	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.Username, user.Role, sessionID, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("jwt generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "could not issue token"})
	}

	actor.SessionID = sessionID
	h.recorder.Record(c.Context(), services.NewAuditEntry("Session", sessionID, models.AuditActionCreate).
		Actor(actor).
		NewValues(map[string]any{"username": user.Username, "role": user.Role}).
		Module("auth", "login"))

	return c.JSON(dto.AuthResponse{Token: token, User: user})
}

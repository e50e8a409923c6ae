package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/procurement-registry/backend/internal/http/dto"
	"github.com/procurement-registry/backend/internal/repositories"
	"github.com/procurement-registry/backend/internal/services"
	"go.uber.org/zap"
)

// AuditHandler exposes the read side of the audit trail to admin tooling.
type AuditHandler struct {
	queries *services.AuditQueryService
	log     *zap.Logger
}

func NewAuditHandler(queries *services.AuditQueryService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{queries: queries, log: log}
}

func pageFromQuery(c *fiber.Ctx) repositories.Page {
	p := repositories.Page{Limit: 50}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Offset = n
		}
	}
	return p
}

func (h *AuditHandler) EntityHistory(c *fiber.Ctx) error {
	entityName := c.Params("name")
	entityID := c.Params("id")
	if entityName == "" || entityID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "entity name and id are required"})
	}

	records, err := h.queries.EntityHistory(c.Context(), entityName, entityID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to load entity history"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: records})
}

func (h *AuditHandler) UserHistory(c *fiber.Ctx) error {
	username := c.Params("username")
	p := pageFromQuery(c)

	records, err := h.queries.UserHistory(c.Context(), username, p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to load user history"})
	}

	return c.JSON(dto.PageResponse{OK: true, Data: records, Limit: p.Limit, Offset: p.Offset})
}

func (h *AuditHandler) Range(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "from must be RFC3339"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "to must be RFC3339"})
	}
	p := pageFromQuery(c)

	records, err := h.queries.RecordsBetween(c.Context(), from, to, p)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.PageResponse{OK: true, Data: records, Limit: p.Limit, Offset: p.Offset})
}

func (h *AuditHandler) Failed(c *fiber.Ctx) error {
	p := pageFromQuery(c)

	records, err := h.queries.FailedOperations(c.Context(), p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to load failed operations"})
	}

	return c.JSON(dto.PageResponse{OK: true, Data: records, Limit: p.Limit, Offset: p.Offset})
}

func (h *AuditHandler) Activity(c *fiber.Ctx) error {
	username := c.Params("username")
	days := 30
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			days = n
		}
	}

	summary, err := h.queries.UserActivity(c.Context(), username, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to compute activity summary"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: summary})
}

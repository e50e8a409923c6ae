package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/procurement-registry/backend/internal/http/dto"
	"github.com/procurement-registry/backend/internal/middleware"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"github.com/procurement-registry/backend/internal/services"
	"go.uber.org/zap"
)

type MailHandler struct {
	mailService *services.MailService
	log         *zap.Logger
}

func NewMailHandler(mailService *services.MailService, log *zap.Logger) *MailHandler {
	return &MailHandler{mailService: mailService, log: log}
}

func (h *MailHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterMailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	mail := &models.Mail{
		Reference:     req.Reference,
		Direction:     req.Direction,
		Year:          req.Year,
		Correspondent: req.Correspondent,
		Subject:       designation(req.Subject),
		ReceivedAt:    req.ReceivedAt,
	}

	if err := h.mailService.Register(c.Context(), middleware.GetActor(c), mail); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: mail})
}

func (h *MailHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid mail id"})
	}

	mail, err := h.mailService.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "mail not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: mail})
}

func (h *MailHandler) List(c *fiber.Ctx) error {
	filter := repositories.MailFilter{Limit: 20}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("direction"); v != "" {
		filter.Direction = &v
	}
	if v := c.Query("year"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Year = &n
		}
	}
	if v := c.Query("archived"); v != "" {
		archived := v == "true" || v == "1"
		filter.Archived = &archived
	}

	items, err := h.mailService.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to list mail"})
	}

	return c.JSON(dto.PageResponse{OK: true, Data: items, Limit: filter.Limit, Offset: filter.Offset})
}

func (h *MailHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid mail id"})
	}

	var req dto.RegisterMailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	mail := &models.Mail{
		Reference:     req.Reference,
		Direction:     req.Direction,
		Year:          req.Year,
		Correspondent: req.Correspondent,
		Subject:       designation(req.Subject),
		ReceivedAt:    req.ReceivedAt,
	}

	if err := h.mailService.Update(c.Context(), middleware.GetActor(c), id, mail); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: mail})
}

func (h *MailHandler) Archive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid mail id"})
	}

	var req dto.ArchiveMailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid location_id"})
	}

	if err := h.mailService.Archive(c.Context(), middleware.GetActor(c), id, locationID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

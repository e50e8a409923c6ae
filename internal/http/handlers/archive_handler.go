package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/procurement-registry/backend/internal/http/dto"
	"github.com/procurement-registry/backend/internal/middleware"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/services"
	"go.uber.org/zap"
)

type ArchiveHandler struct {
	archiveService *services.ArchiveService
	log            *zap.Logger
}

func NewArchiveHandler(archiveService *services.ArchiveService, log *zap.Logger) *ArchiveHandler {
	return &ArchiveHandler{archiveService: archiveService, log: log}
}

func (h *ArchiveHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateArchiveLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	location := &models.ArchiveLocation{
		Room:    req.Room,
		Cabinet: req.Cabinet,
		Shelf:   req.Shelf,
		Box:     req.Box,
		Label:   designation(req.Label),
	}

	if err := h.archiveService.Create(c.Context(), middleware.GetActor(c), location); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: location})
}

func (h *ArchiveHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid location id"})
	}

	location, err := h.archiveService.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "archive location not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: location})
}

func (h *ArchiveHandler) List(c *fiber.Ctx) error {
	limit, offset := 50, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	locations, err := h.archiveService.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to list archive locations"})
	}

	return c.JSON(dto.PageResponse{OK: true, Data: locations, Limit: limit, Offset: offset})
}

func (h *ArchiveHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid location id"})
	}

	var req dto.UpdateArchiveLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	if err := h.archiveService.Update(c.Context(), middleware.GetActor(c), id, designation(req.Label)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ArchiveHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid location id"})
	}

	if err := h.archiveService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

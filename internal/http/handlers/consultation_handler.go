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

type ConsultationHandler struct {
	consultationService *services.ConsultationService
	log                 *zap.Logger
}

func NewConsultationHandler(consultationService *services.ConsultationService, log *zap.Logger) *ConsultationHandler {
	return &ConsultationHandler{consultationService: consultationService, log: log}
}

func (h *ConsultationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateConsultationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	consultation := &models.Consultation{
		Reference: req.Reference,
		Object:    designation(req.Object),
		Mode:      req.Mode,
		Deadline:  req.Deadline,
	}

	if err := h.consultationService.Create(c.Context(), middleware.GetActor(c), consultation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: consultation})
}

func (h *ConsultationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid consultation id"})
	}

	consultation, err := h.consultationService.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "consultation not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: consultation})
}

func (h *ConsultationHandler) List(c *fiber.Ctx) error {
	filter := repositories.ConsultationFilter{Limit: 20}

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
	if v := c.Query("mode"); v != "" {
		filter.Mode = &v
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	consultations, err := h.consultationService.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to list consultations"})
	}

	return c.JSON(dto.PageResponse{OK: true, Data: consultations, Limit: filter.Limit, Offset: filter.Offset})
}

func (h *ConsultationHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid consultation id"})
	}

	var req dto.CreateConsultationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	consultation := &models.Consultation{
		Reference: req.Reference,
		Object:    designation(req.Object),
		Mode:      req.Mode,
		Deadline:  req.Deadline,
	}

	if err := h.consultationService.Update(c.Context(), middleware.GetActor(c), id, consultation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: consultation})
}

func (h *ConsultationHandler) Award(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid consultation id"})
	}

	var req dto.AwardConsultationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	if err := h.consultationService.Award(c.Context(), middleware.GetActor(c), id, req.AwardedTo); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ConsultationHandler) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid consultation id"})
	}

	var req dto.ReasonRequest
	_ = c.BodyParser(&req)

	if err := h.consultationService.Cancel(c.Context(), middleware.GetActor(c), id, req.Reason); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/procurement-registry/backend/internal/http/dto"
	"github.com/procurement-registry/backend/internal/middleware"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/services"
	"go.uber.org/zap"
)

type AmendmentHandler struct {
	amendmentService *services.AmendmentService
	log              *zap.Logger
}

func NewAmendmentHandler(amendmentService *services.AmendmentService, log *zap.Logger) *AmendmentHandler {
	return &AmendmentHandler{amendmentService: amendmentService, log: log}
}

func (h *AmendmentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAmendmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract_id"})
	}

	amendment := &models.Amendment{
		ContractID:    contractID,
		Object:        designation(req.Object),
		AmountDelta:   req.AmountDelta,
		ExtensionDays: req.ExtensionDays,
	}

	if err := h.amendmentService.Create(c.Context(), middleware.GetActor(c), amendment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: amendment})
}

func (h *AmendmentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid amendment id"})
	}

	amendment, err := h.amendmentService.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "amendment not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: amendment})
}

func (h *AmendmentHandler) ListByContract(c *fiber.Ctx) error {
	contractID, err := uuid.Parse(c.Params("contractId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	amendments, err := h.amendmentService.ListByContract(c.Context(), contractID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to list amendments"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: amendments})
}

func (h *AmendmentHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid amendment id"})
	}

	if err := h.amendmentService.Approve(c.Context(), middleware.GetActor(c), id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AmendmentHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid amendment id"})
	}

	var req dto.ReasonRequest
	_ = c.BodyParser(&req)

	if err := h.amendmentService.Reject(c.Context(), middleware.GetActor(c), id, req.Reason); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AmendmentHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid amendment id"})
	}

	if err := h.amendmentService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

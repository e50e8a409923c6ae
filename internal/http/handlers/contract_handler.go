package handlers

import (
	"context"
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

func designation(f dto.DesignationFields) models.Designation {
	return models.Designation{Ar: f.Ar, En: f.En, Fr: f.Fr}
}

type ContractHandler struct {
	contractService *services.ContractService
	log             *zap.Logger
}

func NewContractHandler(contractService *services.ContractService, log *zap.Logger) *ContractHandler {
	return &ContractHandler{contractService: contractService, log: log}
}

func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	contract := &models.Contract{
		Number:     req.Number,
		Year:       req.Year,
		Subject:    designation(req.Subject),
		Contractor: req.Contractor,
		AmountDA:   req.AmountDA,
		Phase:      req.Phase,
		SignedAt:   req.SignedAt,
		ExpiresAt:  req.ExpiresAt,
	}

	if err := h.contractService.Create(c.Context(), middleware.GetActor(c), contract); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: contract})
}

func (h *ContractHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	contract, err := h.contractService.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "contract not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: contract})
}

func (h *ContractHandler) List(c *fiber.Ctx) error {
	filter := repositories.ContractFilter{Limit: 20}

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
	if v := c.Query("year"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Year = &n
		}
	}
	if v := c.Query("phase"); v != "" {
		filter.Phase = &v
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("contractor"); v != "" {
		filter.Contractor = &v
	}

	contracts, err := h.contractService.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to list contracts"})
	}

	return c.JSON(dto.PageResponse{OK: true, Data: contracts, Limit: filter.Limit, Offset: filter.Offset})
}

func (h *ContractHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	contract := &models.Contract{
		Number:     req.Number,
		Year:       req.Year,
		Subject:    designation(req.Subject),
		Contractor: req.Contractor,
		AmountDA:   req.AmountDA,
		Phase:      req.Phase,
		SignedAt:   req.SignedAt,
		ExpiresAt:  req.ExpiresAt,
	}

	if err := h.contractService.Update(c.Context(), middleware.GetActor(c), id, contract); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: contract})
}

func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	if err := h.contractService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ContractHandler) Submit(c *fiber.Ctx) error {
	return h.workflow(c, h.contractService.Submit)
}

func (h *ContractHandler) Approve(c *fiber.Ctx) error {
	return h.workflow(c, h.contractService.Approve)
}

func (h *ContractHandler) Archive(c *fiber.Ctx) error {
	return h.workflow(c, h.contractService.Archive)
}

func (h *ContractHandler) Restore(c *fiber.Ctx) error {
	return h.workflow(c, h.contractService.Restore)
}

func (h *ContractHandler) Reject(c *fiber.Ctx) error {
	return h.workflowWithReason(c, h.contractService.Reject)
}

func (h *ContractHandler) Cancel(c *fiber.Ctx) error {
	return h.workflowWithReason(c, h.contractService.Cancel)
}

func (h *ContractHandler) workflow(c *fiber.Ctx, op func(ctx context.Context, actor models.Actor, id uuid.UUID) error) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	if err := op(c.Context(), middleware.GetActor(c), id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ContractHandler) workflowWithReason(c *fiber.Ctx, op func(ctx context.Context, actor models.Actor, id uuid.UUID, reason string) error) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	var req dto.ReasonRequest
	_ = c.BodyParser(&req)

	if err := op(c.Context(), middleware.GetActor(c), id, req.Reason); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

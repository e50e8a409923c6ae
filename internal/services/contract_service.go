package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"go.uber.org/zap"
)

const moduleContracts = "contracts"

type ContractService struct {
	contractRepo *repositories.ContractRepo
	recorder     *AuditRecorder
	log          *zap.Logger
}

func NewContractService(
	contractRepo *repositories.ContractRepo,
	recorder *AuditRecorder,
	log *zap.Logger,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		recorder:     recorder,
		log:          log,
	}
}

func (s *ContractService) Create(ctx context.Context, actor models.Actor, c *models.Contract) error {
	start := time.Now()

	if c.Number == "" || c.Contractor == "" || c.AmountDA == "" {
		return fmt.Errorf("number, contractor and amount are required")
	}
	if c.Year <= 0 {
		c.Year = time.Now().Year()
	}
	if c.Subject.Empty() {
		return fmt.Errorf("subject designation is required in at least one language")
	}
	if !models.IsValidContractPhase(c.Phase) {
		return fmt.Errorf("invalid contract phase %q", c.Phase)
	}
	if c.Status == "" {
		c.Status = models.ContractStatusDraft
	}

	exists, err := s.contractRepo.ExistsByNumber(ctx, c.Number, c.Year)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("contract %s/%d already exists", c.Number, c.Year)
	}

	if err := s.contractRepo.Create(ctx, c); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("Contract", c.Number, models.AuditActionCreate).
			Actor(actor).
			Failed(err).
			Module(moduleContracts, "contract_registration"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("Contract", c.ID.String(), models.AuditActionCreate).
		Actor(actor).
		NewValues(c).
		Description(fmt.Sprintf("registered contract %s/%d", c.Number, c.Year)).
		Duration(time.Since(start)).
		Module(moduleContracts, "contract_registration"))

	return nil
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return s.contractRepo.GetByID(ctx, id)
}

func (s *ContractService) List(ctx context.Context, f repositories.ContractFilter) ([]models.Contract, error) {
	return s.contractRepo.List(ctx, f)
}

// Update rewrites a draft contract's fields. Submitted and later
// contracts are immutable except through the status workflow.
func (s *ContractService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, c *models.Contract) error {
	existing, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("contract not found")
	}
	if existing.Status != models.ContractStatusDraft {
		return fmt.Errorf("only draft contracts can be edited")
	}
	if !models.IsValidContractPhase(c.Phase) {
		return fmt.Errorf("invalid contract phase %q", c.Phase)
	}

	c.ID = id
	c.Status = existing.Status
	if err := s.contractRepo.Update(ctx, c); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("Contract", id.String(), models.AuditActionUpdate).
			Actor(actor).
			Failed(err).
			Module(moduleContracts, "contract_maintenance"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("Contract", id.String(), models.AuditActionUpdate).
		Actor(actor).
		OldValues(existing).
		NewValues(c).
		Module(moduleContracts, "contract_maintenance"))

	return nil
}

func (s *ContractService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	existing, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("contract not found")
	}
	if existing.Status != models.ContractStatusDraft {
		err := fmt.Errorf("only draft contracts can be deleted")
		s.recorder.Record(ctx, NewAuditEntry("Contract", id.String(), models.AuditActionDelete).
			Actor(actor).
			Failed(err).
			Module(moduleContracts, "contract_maintenance"))
		return err
	}

	if err := s.contractRepo.Delete(ctx, id); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("Contract", id.String(), models.AuditActionDelete).
			Actor(actor).
			Failed(err).
			Module(moduleContracts, "contract_maintenance"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("Contract", id.String(), models.AuditActionDelete).
		Actor(actor).
		OldValues(existing).
		Module(moduleContracts, "contract_maintenance"))

	return nil
}

func (s *ContractService) Submit(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	return s.transition(ctx, actor, id, models.ContractStatusSubmitted, models.AuditActionSubmit, nil)
}

func (s *ContractService) Approve(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	return s.transition(ctx, actor, id, models.ContractStatusApproved, models.AuditActionApprove, nil)
}

func (s *ContractService) Reject(ctx context.Context, actor models.Actor, id uuid.UUID, reason string) error {
	return s.transition(ctx, actor, id, models.ContractStatusRejected, models.AuditActionReject,
		map[string]any{"reason": reason})
}

func (s *ContractService) Archive(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	return s.transition(ctx, actor, id, models.ContractStatusArchived, models.AuditActionArchive, nil)
}

// Restore brings an archived contract back to approved.
func (s *ContractService) Restore(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	return s.transition(ctx, actor, id, models.ContractStatusApproved, models.AuditActionRestore, nil)
}

func (s *ContractService) Cancel(ctx context.Context, actor models.Actor, id uuid.UUID, reason string) error {
	return s.transition(ctx, actor, id, models.ContractStatusCancelled, models.AuditActionCancel,
		map[string]any{"reason": reason})
}

// transition validates and performs a status change, recording the
// attempt either way.
func (s *ContractService) transition(ctx context.Context, actor models.Actor, id uuid.UUID, newStatus, action string, params map[string]any) error {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("contract not found")
	}

	entry := NewAuditEntry("Contract", id.String(), action).
		Actor(actor).
		Module(moduleContracts, "contract_workflow")
	if params != nil {
		entry.Parameters(params)
	}

	if !models.IsValidContractTransition(contract.Status, newStatus) {
		err := fmt.Errorf("invalid transition from %s to %s", contract.Status, newStatus)
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}

	oldStatus := contract.Status
	if err := s.contractRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}

	s.recorder.Record(ctx, entry.
		OldValues(map[string]any{"status": oldStatus}).
		NewValues(map[string]any{"status": newStatus}))

	return nil
}

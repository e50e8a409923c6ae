package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"go.uber.org/zap"
)

type AmendmentService struct {
	amendmentRepo *repositories.AmendmentRepo
	contractRepo  *repositories.ContractRepo
	recorder      *AuditRecorder
	log           *zap.Logger
}

func NewAmendmentService(
	amendmentRepo *repositories.AmendmentRepo,
	contractRepo *repositories.ContractRepo,
	recorder *AuditRecorder,
	log *zap.Logger,
) *AmendmentService {
	return &AmendmentService{
		amendmentRepo: amendmentRepo,
		contractRepo:  contractRepo,
		recorder:      recorder,
		log:           log,
	}
}

// Create registers a new avenant against an approved contract. The
// avenant number is assigned sequentially within the contract.
func (s *AmendmentService) Create(ctx context.Context, actor models.Actor, a *models.Amendment) error {
	contract, err := s.contractRepo.GetByID(ctx, a.ContractID)
	if err != nil {
		return fmt.Errorf("contract not found")
	}
	if contract.Status != models.ContractStatusApproved {
		return fmt.Errorf("amendments require an approved contract, status is %s", contract.Status)
	}
	if a.Object.Empty() {
		return fmt.Errorf("object designation is required in at least one language")
	}
	if a.AmountDelta == "" && a.ExtensionDays == 0 {
		return fmt.Errorf("an amendment must change the amount or the duration")
	}
	if a.AmountDelta == "" {
		a.AmountDelta = "0"
	}

	number, err := s.amendmentRepo.NextNumber(ctx, a.ContractID)
	if err != nil {
		return err
	}
	a.Number = number
	a.Status = models.AmendmentStatusSubmitted

	if err := s.amendmentRepo.Create(ctx, a); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("Amendment", a.ContractID.String(), models.AuditActionCreate).
			Actor(actor).
			Failed(err).
			Module("amendments", "amendment_registration"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("Amendment", a.ID.String(), models.AuditActionCreate).
		Actor(actor).
		NewValues(a).
		Description(fmt.Sprintf("avenant %d on contract %s/%d", a.Number, contract.Number, contract.Year)).
		Module("amendments", "amendment_registration"))

	return nil
}

func (s *AmendmentService) Get(ctx context.Context, id uuid.UUID) (*models.Amendment, error) {
	return s.amendmentRepo.GetByID(ctx, id)
}

func (s *AmendmentService) ListByContract(ctx context.Context, contractID uuid.UUID) ([]models.Amendment, error) {
	return s.amendmentRepo.ListByContract(ctx, contractID)
}

func (s *AmendmentService) Approve(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	return s.decide(ctx, actor, id, models.AmendmentStatusApproved, models.AuditActionApprove, "")
}

func (s *AmendmentService) Reject(ctx context.Context, actor models.Actor, id uuid.UUID, reason string) error {
	return s.decide(ctx, actor, id, models.AmendmentStatusRejected, models.AuditActionReject, reason)
}

func (s *AmendmentService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	existing, err := s.amendmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("amendment not found")
	}
	if existing.Status != models.AmendmentStatusSubmitted {
		return fmt.Errorf("only submitted amendments can be deleted")
	}

	if err := s.amendmentRepo.Delete(ctx, id); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("Amendment", id.String(), models.AuditActionDelete).
			Actor(actor).
			Failed(err).
			Module("amendments", "amendment_maintenance"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("Amendment", id.String(), models.AuditActionDelete).
		Actor(actor).
		OldValues(existing).
		Module("amendments", "amendment_maintenance"))

	return nil
}

func (s *AmendmentService) decide(ctx context.Context, actor models.Actor, id uuid.UUID, newStatus, action, reason string) error {
	existing, err := s.amendmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("amendment not found")
	}

	entry := NewAuditEntry("Amendment", id.String(), action).
		Actor(actor).
		Module("amendments", "amendment_workflow")
	if reason != "" {
		entry.Parameters(map[string]any{"reason": reason})
	}

	if existing.Status != models.AmendmentStatusSubmitted {
		err := fmt.Errorf("amendment already decided: %s", existing.Status)
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}

	if err := s.amendmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}

	s.recorder.Record(ctx, entry.
		OldValues(map[string]any{"status": existing.Status}).
		NewValues(map[string]any{"status": newStatus}))

	return nil
}

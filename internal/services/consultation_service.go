package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"go.uber.org/zap"
)

type ConsultationService struct {
	consultationRepo *repositories.ConsultationRepo
	recorder         *AuditRecorder
	log              *zap.Logger
}

func NewConsultationService(
	consultationRepo *repositories.ConsultationRepo,
	recorder *AuditRecorder,
	log *zap.Logger,
) *ConsultationService {
	return &ConsultationService{
		consultationRepo: consultationRepo,
		recorder:         recorder,
		log:              log,
	}
}

func (s *ConsultationService) Create(ctx context.Context, actor models.Actor, c *models.Consultation) error {
	if c.Reference == "" {
		return fmt.Errorf("reference is required")
	}
	if c.Object.Empty() {
		return fmt.Errorf("object designation is required in at least one language")
	}
	if !models.IsValidConsultationMode(c.Mode) {
		return fmt.Errorf("invalid consultation mode %q", c.Mode)
	}
	c.Status = models.ConsultationStatusOpen

	exists, err := s.consultationRepo.ExistsByReference(ctx, c.Reference)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("consultation %s already exists", c.Reference)
	}

	if err := s.consultationRepo.Create(ctx, c); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("Consultation", c.Reference, models.AuditActionCreate).
			Actor(actor).
			Failed(err).
			Module("consultations", "consultation_registration"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("Consultation", c.ID.String(), models.AuditActionCreate).
		Actor(actor).
		NewValues(c).
		Module("consultations", "consultation_registration"))

	return nil
}

func (s *ConsultationService) Get(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	return s.consultationRepo.GetByID(ctx, id)
}

func (s *ConsultationService) List(ctx context.Context, f repositories.ConsultationFilter) ([]models.Consultation, error) {
	return s.consultationRepo.List(ctx, f)
}

func (s *ConsultationService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, c *models.Consultation) error {
	existing, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("consultation not found")
	}
	if existing.Status != models.ConsultationStatusOpen {
		return fmt.Errorf("only open consultations can be edited")
	}
	if !models.IsValidConsultationMode(c.Mode) {
		return fmt.Errorf("invalid consultation mode %q", c.Mode)
	}

	c.ID = id
	if err := s.consultationRepo.Update(ctx, c); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("Consultation", id.String(), models.AuditActionUpdate).
			Actor(actor).
			Failed(err).
			Module("consultations", "consultation_maintenance"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("Consultation", id.String(), models.AuditActionUpdate).
		Actor(actor).
		OldValues(existing).
		NewValues(c).
		Module("consultations", "consultation_maintenance"))

	return nil
}

// Award closes an open or evaluating consultation in favour of one bidder.
func (s *ConsultationService) Award(ctx context.Context, actor models.Actor, id uuid.UUID, awardedTo string) error {
	existing, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("consultation not found")
	}

	entry := NewAuditEntry("Consultation", id.String(), models.AuditActionApprove).
		Actor(actor).
		Parameters(map[string]any{"awarded_to": awardedTo}).
		Module("consultations", "consultation_award")

	if existing.Status != models.ConsultationStatusOpen && existing.Status != models.ConsultationStatusEvaluating {
		err := fmt.Errorf("consultation cannot be awarded from status %s", existing.Status)
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}
	if awardedTo == "" {
		return fmt.Errorf("awarded_to is required")
	}

	if err := s.consultationRepo.UpdateStatus(ctx, id, models.ConsultationStatusAwarded, &awardedTo); err != nil {
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}

	s.recorder.Record(ctx, entry.
		OldValues(map[string]any{"status": existing.Status}).
		NewValues(map[string]any{"status": models.ConsultationStatusAwarded, "awarded_to": awardedTo}))

	return nil
}

func (s *ConsultationService) Cancel(ctx context.Context, actor models.Actor, id uuid.UUID, reason string) error {
	existing, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("consultation not found")
	}

	entry := NewAuditEntry("Consultation", id.String(), models.AuditActionCancel).
		Actor(actor).
		Parameters(map[string]any{"reason": reason}).
		Module("consultations", "consultation_workflow")

	if existing.Status == models.ConsultationStatusAwarded || existing.Status == models.ConsultationStatusCancelled {
		err := fmt.Errorf("consultation already closed: %s", existing.Status)
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}

	if err := s.consultationRepo.UpdateStatus(ctx, id, models.ConsultationStatusCancelled, nil); err != nil {
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}

	s.recorder.Record(ctx, entry.
		OldValues(map[string]any{"status": existing.Status}).
		NewValues(map[string]any{"status": models.ConsultationStatusCancelled}))

	return nil
}

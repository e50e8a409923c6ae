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

type MailService struct {
	mailRepo    *repositories.MailRepo
	archiveRepo *repositories.ArchiveRepo
	recorder    *AuditRecorder
	log         *zap.Logger
}

func NewMailService(
	mailRepo *repositories.MailRepo,
	archiveRepo *repositories.ArchiveRepo,
	recorder *AuditRecorder,
	log *zap.Logger,
) *MailService {
	return &MailService{
		mailRepo:    mailRepo,
		archiveRepo: archiveRepo,
		recorder:    recorder,
		log:         log,
	}
}

func (s *MailService) Register(ctx context.Context, actor models.Actor, m *models.Mail) error {
	if m.Reference == "" || m.Correspondent == "" {
		return fmt.Errorf("reference and correspondent are required")
	}
	if !models.IsValidMailDirection(m.Direction) {
		return fmt.Errorf("invalid mail direction %q", m.Direction)
	}
	if m.Subject.Empty() {
		return fmt.Errorf("subject designation is required in at least one language")
	}
	if m.Year <= 0 {
		m.Year = time.Now().Year()
	}

	exists, err := s.mailRepo.ExistsByReference(ctx, m.Reference, m.Direction, m.Year)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s mail %s/%d already registered", m.Direction, m.Reference, m.Year)
	}

	if err := s.mailRepo.Create(ctx, m); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("Mail", m.Reference, models.AuditActionCreate).
			Actor(actor).
			Failed(err).
			Module("mail", "mail_registration"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("Mail", m.ID.String(), models.AuditActionCreate).
		Actor(actor).
		NewValues(m).
		Module("mail", "mail_registration"))

	return nil
}

func (s *MailService) Get(ctx context.Context, id uuid.UUID) (*models.Mail, error) {
	return s.mailRepo.GetByID(ctx, id)
}

func (s *MailService) List(ctx context.Context, f repositories.MailFilter) ([]models.Mail, error) {
	return s.mailRepo.List(ctx, f)
}

func (s *MailService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, m *models.Mail) error {
	existing, err := s.mailRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("mail not found")
	}
	if existing.ArchiveLocationID != nil {
		return fmt.Errorf("archived mail cannot be edited")
	}
	if !models.IsValidMailDirection(m.Direction) {
		return fmt.Errorf("invalid mail direction %q", m.Direction)
	}

	m.ID = id
	if err := s.mailRepo.Update(ctx, m); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("Mail", id.String(), models.AuditActionUpdate).
			Actor(actor).
			Failed(err).
			Module("mail", "mail_maintenance"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("Mail", id.String(), models.AuditActionUpdate).
		Actor(actor).
		OldValues(existing).
		NewValues(m).
		Module("mail", "mail_maintenance"))

	return nil
}

// Archive files a piece of mail at a physical location.
func (s *MailService) Archive(ctx context.Context, actor models.Actor, id, locationID uuid.UUID) error {
	existing, err := s.mailRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("mail not found")
	}

	location, err := s.archiveRepo.GetByID(ctx, locationID)
	if err != nil {
		return fmt.Errorf("archive location not found")
	}

	entry := NewAuditEntry("Mail", id.String(), models.AuditActionArchive).
		Actor(actor).
		Parameters(map[string]any{"location_id": locationID.String(), "location_code": location.Code}).
		Module("mail", "mail_archiving")

	if existing.ArchiveLocationID != nil {
		err := fmt.Errorf("mail already archived")
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}

	if err := s.mailRepo.SetArchiveLocation(ctx, id, locationID); err != nil {
		s.recorder.Record(ctx, entry.Failed(err))
		return err
	}

	s.recorder.Record(ctx, entry.
		Description(fmt.Sprintf("filed at %s", location.Code)))

	return nil
}

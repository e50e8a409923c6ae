package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"go.uber.org/zap"
)

type ArchiveService struct {
	archiveRepo *repositories.ArchiveRepo
	recorder    *AuditRecorder
	log         *zap.Logger
}

func NewArchiveService(
	archiveRepo *repositories.ArchiveRepo,
	recorder *AuditRecorder,
	log *zap.Logger,
) *ArchiveService {
	return &ArchiveService{
		archiveRepo: archiveRepo,
		recorder:    recorder,
		log:         log,
	}
}

func (s *ArchiveService) Create(ctx context.Context, actor models.Actor, loc *models.ArchiveLocation) error {
	if loc.Room == "" || loc.Cabinet == "" || loc.Shelf == "" || loc.Box == "" {
		return fmt.Errorf("room, cabinet, shelf and box are required")
	}
	loc.Code = models.ArchiveCode(loc.Room, loc.Cabinet, loc.Shelf, loc.Box)

	exists, err := s.archiveRepo.ExistsByCode(ctx, loc.Code)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("archive location %s already exists", loc.Code)
	}

	if err := s.archiveRepo.Create(ctx, loc); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("ArchiveLocation", loc.Code, models.AuditActionCreate).
			Actor(actor).
			Failed(err).
			Module("archive", "location_registration"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("ArchiveLocation", loc.ID.String(), models.AuditActionCreate).
		Actor(actor).
		NewValues(loc).
		Module("archive", "location_registration"))

	return nil
}

func (s *ArchiveService) Get(ctx context.Context, id uuid.UUID) (*models.ArchiveLocation, error) {
	return s.archiveRepo.GetByID(ctx, id)
}

func (s *ArchiveService) List(ctx context.Context, limit, offset int) ([]models.ArchiveLocation, error) {
	return s.archiveRepo.List(ctx, limit, offset)
}

// Update relabels a location. The physical coordinates and code are fixed
// once created; a moved box is a new location.
func (s *ArchiveService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, label models.Designation) error {
	existing, err := s.archiveRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("archive location not found")
	}

	updated := *existing
	updated.Label = label
	if err := s.archiveRepo.Update(ctx, &updated); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("ArchiveLocation", id.String(), models.AuditActionUpdate).
			Actor(actor).
			Failed(err).
			Module("archive", "location_maintenance"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("ArchiveLocation", id.String(), models.AuditActionUpdate).
		Actor(actor).
		OldValues(existing).
		NewValues(&updated).
		Module("archive", "location_maintenance"))

	return nil
}

func (s *ArchiveService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	existing, err := s.archiveRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("archive location not found")
	}

	inUse, err := s.archiveRepo.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		err := fmt.Errorf("location %s still holds archived mail", existing.Code)
		s.recorder.Record(ctx, NewAuditEntry("ArchiveLocation", id.String(), models.AuditActionDelete).
			Actor(actor).
			Failed(err).
			Module("archive", "location_maintenance"))
		return err
	}

	if err := s.archiveRepo.Delete(ctx, id); err != nil {
		s.recorder.Record(ctx, NewAuditEntry("ArchiveLocation", id.String(), models.AuditActionDelete).
			Actor(actor).
			Failed(err).
			Module("archive", "location_maintenance"))
		return err
	}

	s.recorder.Record(ctx, NewAuditEntry("ArchiveLocation", id.String(), models.AuditActionDelete).
		Actor(actor).
		OldValues(existing).
		Module("archive", "location_maintenance"))

	return nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"go.uber.org/zap"
)

// AuditQueryService is the read side of the audit trail: plain lookups
// and one aggregation, no mutation of the store.
type AuditQueryService struct {
	store AuditStore
	log   *zap.Logger
}

func NewAuditQueryService(store AuditStore, log *zap.Logger) *AuditQueryService {
	return &AuditQueryService{store: store, log: log}
}

// EntityHistory returns every record for one entity instance, newest first.
func (s *AuditQueryService) EntityHistory(ctx context.Context, entityName, entityID string) ([]models.AuditRecord, error) {
	return s.store.ListByEntity(ctx, entityName, entityID)
}

func (s *AuditQueryService) UserHistory(ctx context.Context, username string, p repositories.Page) ([]models.AuditRecord, error) {
	return s.store.ListByUser(ctx, username, p)
}

// RecordsBetween returns a page of records with timestamps in the
// inclusive [from, to] range.
func (s *AuditQueryService) RecordsBetween(ctx context.Context, from, to time.Time, p repositories.Page) ([]models.AuditRecord, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: end %s before start %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	return s.store.ListByTimeRange(ctx, from, to, p)
}

func (s *AuditQueryService) FailedOperations(ctx context.Context, p repositories.Page) ([]models.AuditRecord, error) {
	return s.store.ListFailed(ctx, p)
}

// UserActivity recomputes one actor's summary over the last `days` days:
// total record count plus a per-action breakdown.
func (s *AuditQueryService) UserActivity(ctx context.Context, username string, days int) (*models.ActivitySummary, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	counts, err := s.store.CountByActionSince(ctx, username, since)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return &models.ActivitySummary{
		Username: username,
		Days:     days,
		Since:    since,
		Total:    total,
		ByAction: counts,
	}, nil
}

package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
)

// memAuditStore is an in-memory AuditStore used across the service
// tests. Reads return newest first, matching the SQL ordering.
type memAuditStore struct {
	mu      sync.Mutex
	records []models.AuditRecord
	nextID  int64
	failing bool
}

func newMemAuditStore() *memAuditStore {
	return &memAuditStore{nextID: 1}
}

func (m *memAuditStore) Insert(_ context.Context, rec *models.AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("store unavailable")
	}
	rec.ID = m.nextID
	m.nextID++
	m.records = append(m.records, *rec)
	return nil
}

func (m *memAuditStore) snapshot(match func(models.AuditRecord) bool) []models.AuditRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AuditRecord
	for _, r := range m.records {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func page(records []models.AuditRecord, p repositories.Page) []models.AuditRecord {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}
	if p.Offset >= len(records) {
		return nil
	}
	records = records[p.Offset:]
	if len(records) > limit {
		records = records[:limit]
	}
	return records
}

func (m *memAuditStore) ListByEntity(_ context.Context, entityName, entityID string) ([]models.AuditRecord, error) {
	return m.snapshot(func(r models.AuditRecord) bool {
		return r.EntityName == entityName && r.EntityID == entityID
	}), nil
}

func (m *memAuditStore) ListByUser(_ context.Context, username string, p repositories.Page) ([]models.AuditRecord, error) {
	return page(m.snapshot(func(r models.AuditRecord) bool {
		return r.Username != nil && *r.Username == username
	}), p), nil
}

func (m *memAuditStore) ListByTimeRange(_ context.Context, from, to time.Time, p repositories.Page) ([]models.AuditRecord, error) {
	return page(m.snapshot(func(r models.AuditRecord) bool {
		return !r.Timestamp.Before(from) && !r.Timestamp.After(to)
	}), p), nil
}

func (m *memAuditStore) ListFailed(_ context.Context, p repositories.Page) ([]models.AuditRecord, error) {
	return page(m.snapshot(func(r models.AuditRecord) bool {
		return r.Status == models.AuditStatusFailed
	}), p), nil
}

func (m *memAuditStore) CountByActionSince(_ context.Context, username string, since time.Time) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, r := range m.snapshot(func(r models.AuditRecord) bool {
		return r.Username != nil && *r.Username == username && !r.Timestamp.Before(since)
	}) {
		counts[r.Action]++
	}
	return counts, nil
}

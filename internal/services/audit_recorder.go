package services

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/procurement-registry/backend/internal/events"
	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"go.uber.org/zap"
)

// AuditStore is the slice of the audit repository the recorder and query
// service depend on. Tests swap in an in-memory sink.
type AuditStore interface {
	Insert(ctx context.Context, rec *models.AuditRecord) error
	ListByEntity(ctx context.Context, entityName, entityID string) ([]models.AuditRecord, error)
	ListByUser(ctx context.Context, username string, p repositories.Page) ([]models.AuditRecord, error)
	ListByTimeRange(ctx context.Context, from, to time.Time, p repositories.Page) ([]models.AuditRecord, error)
	ListFailed(ctx context.Context, p repositories.Page) ([]models.AuditRecord, error)
	CountByActionSince(ctx context.Context, username string, since time.Time) (map[string]int64, error)
}

// AuditEntry is the event descriptor business services assemble before
// calling Record. Payload fields take raw values; serialization happens
// inside the recorder so a non-serializable value can be dropped without
// losing the rest of the entry.
type AuditEntry struct {
	entityName      string
	entityID        string
	action          string
	actor           models.Actor
	oldValues       any
	hasOldValues    bool
	newValues       any
	hasNewValues    bool
	parameters      any
	hasParameters   bool
	metadata        any
	hasMetadata     bool
	description     string
	status          string
	errorMessage    string
	durationMS      *int64
	module          string
	businessProcess string
	parentAuditID   *int64
}

// NewAuditEntry starts an entry for one attempted operation. Status
// defaults to success; call Failed to flip it.
func NewAuditEntry(entityName, entityID, action string) *AuditEntry {
	return &AuditEntry{
		entityName: entityName,
		entityID:   entityID,
		action:     action,
		status:     models.AuditStatusSuccess,
	}
}

func (e *AuditEntry) Actor(a models.Actor) *AuditEntry {
	e.actor = a
	return e
}

func (e *AuditEntry) OldValues(v any) *AuditEntry {
	e.oldValues = v
	e.hasOldValues = true
	return e
}

func (e *AuditEntry) NewValues(v any) *AuditEntry {
	e.newValues = v
	e.hasNewValues = true
	return e
}

func (e *AuditEntry) Parameters(v any) *AuditEntry {
	e.parameters = v
	e.hasParameters = true
	return e
}

func (e *AuditEntry) Metadata(v any) *AuditEntry {
	e.metadata = v
	e.hasMetadata = true
	return e
}

func (e *AuditEntry) Description(s string) *AuditEntry {
	e.description = s
	return e
}

func (e *AuditEntry) Module(module, businessProcess string) *AuditEntry {
	e.module = module
	e.businessProcess = businessProcess
	return e
}

func (e *AuditEntry) Duration(d time.Duration) *AuditEntry {
	ms := d.Milliseconds()
	e.durationMS = &ms
	return e
}

func (e *AuditEntry) Parent(auditID int64) *AuditEntry {
	e.parentAuditID = &auditID
	return e
}

// Failed marks the attempt as failed with the given cause.
func (e *AuditEntry) Failed(err error) *AuditEntry {
	e.status = models.AuditStatusFailed
	if err != nil {
		e.errorMessage = err.Error()
	}
	return e
}

// Partial marks an operation that completed only in part.
func (e *AuditEntry) Partial(msg string) *AuditEntry {
	e.status = models.AuditStatusPartial
	e.errorMessage = msg
	return e
}

// AuditRecorder commits audit entries best-effort. It holds no state
// between calls, so any number of business operations may record
// concurrently. A failure inside Record is logged and absorbed — the
// caller's own work is never failed or rolled back by auditing.
type AuditRecorder struct {
	store     AuditStore
	publisher events.Publisher // optional live-feed fan-out, may be nil
	log       *zap.Logger
	dropped   atomic.Int64
}

func NewAuditRecorder(store AuditStore, publisher events.Publisher, log *zap.Logger) *AuditRecorder {
	return &AuditRecorder{store: store, publisher: publisher, log: log}
}

// Record stamps the timestamp and persists one record. Fire-and-forget:
// nothing is returned, nothing propagates. The write is detached from the
// caller's context so a cancelled request or rolled-back business
// transaction still leaves its audit trail behind.
func (r *AuditRecorder) Record(ctx context.Context, e *AuditEntry) {
	rec := &models.AuditRecord{
		EntityName:      e.entityName,
		EntityID:        e.entityID,
		Action:          e.action,
		Username:        optStr(e.actor.Username),
		IPAddress:       optStr(e.actor.IPAddress),
		UserAgent:       optStr(e.actor.UserAgent),
		SessionID:       optStr(e.actor.SessionID),
		OldValues:       r.marshalField("old_values", e.oldValues, e.hasOldValues),
		NewValues:       r.marshalField("new_values", e.newValues, e.hasNewValues),
		Parameters:      r.marshalField("parameters", e.parameters, e.hasParameters),
		Metadata:        r.marshalField("metadata", e.metadata, e.hasMetadata),
		Description:     optStr(e.description),
		Status:          e.status,
		ErrorMessage:    optStr(e.errorMessage),
		DurationMS:      e.durationMS,
		Module:          optStr(e.module),
		BusinessProcess: optStr(e.businessProcess),
		ParentAuditID:   e.parentAuditID,
		Timestamp:       time.Now().UTC(),
	}

	ctx = context.WithoutCancel(ctx)

	if err := r.store.Insert(ctx, rec); err != nil {
		r.dropped.Add(1)
		r.log.Error("audit record dropped",
			zap.String("entity_name", e.entityName),
			zap.String("entity_id", e.entityID),
			zap.String("action", e.action),
			zap.Error(err),
		)
		return
	}

	if r.publisher != nil {
		_ = r.publisher.Publish(ctx, events.StreamAudit, events.Event{
			Type: events.EventAuditRecorded,
			Payload: map[string]any{
				"id":          rec.ID,
				"entity_name": rec.EntityName,
				"entity_id":   rec.EntityID,
				"action":      rec.Action,
				"status":      rec.Status,
				"username":    e.actor.Username,
				"timestamp":   rec.Timestamp,
			},
		})
	}
}

// Dropped reports how many entries were lost to persistence failures
// since startup. Exposed on the health endpoint as a secondary signal
// for the otherwise silent best-effort contract.
func (r *AuditRecorder) Dropped() int64 {
	return r.dropped.Load()
}

func (r *AuditRecorder) marshalField(field string, v any, set bool) *string {
	if !set {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		r.log.Warn("audit payload not serializable, field dropped",
			zap.String("field", field), zap.Error(err))
		return nil
	}
	s := string(b)
	return &s
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

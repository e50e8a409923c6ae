package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/procurement-registry/backend/internal/models"
	"go.uber.org/zap"
)

func TestRecorderPersistsEntry(t *testing.T) {
	store := newMemAuditStore()
	recorder := NewAuditRecorder(store, nil, zap.NewNop())
	ctx := context.Background()

	start := time.Now().UTC()
	actor := models.Actor{Username: "alice", IPAddress: "10.0.0.1", SessionID: "sess-1"}

	recorder.Record(ctx, NewAuditEntry("Contract", "42", models.AuditActionUpdate).
		Actor(actor).
		OldValues(map[string]any{"status": "draft"}).
		NewValues(map[string]any{"status": "submitted"}).
		Module("contracts", "contract_workflow").
		Duration(12*time.Millisecond))

	records, err := store.ListByEntity(ctx, "Contract", "42")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.ID == 0 {
		t.Error("record should have an assigned id")
	}
	if rec.Action != models.AuditActionUpdate {
		t.Errorf("action = %q, want %q", rec.Action, models.AuditActionUpdate)
	}
	if rec.Status != models.AuditStatusSuccess {
		t.Errorf("status = %q, want success", rec.Status)
	}
	if rec.Username == nil || *rec.Username != "alice" {
		t.Errorf("username = %v, want alice", rec.Username)
	}
	if rec.Timestamp.Before(start) {
		t.Errorf("timestamp %s stamped before the call started at %s", rec.Timestamp, start)
	}
	if old := models.DecodePayload(rec.OldValues); old["status"] != "draft" {
		t.Errorf("old_values = %v, want status=draft", old)
	}
	if rec.DurationMS == nil || *rec.DurationMS != 12 {
		t.Errorf("duration_ms = %v, want 12", rec.DurationMS)
	}
	if recorder.Dropped() != 0 {
		t.Errorf("dropped = %d, want 0", recorder.Dropped())
	}
}

func TestRecorderSwallowsStoreFailure(t *testing.T) {
	store := newMemAuditStore()
	recorder := NewAuditRecorder(store, nil, zap.NewNop())
	ctx := context.Background()

	store.failing = true
	recorder.Record(ctx, NewAuditEntry("Contract", "1", models.AuditActionCreate))

	if got := recorder.Dropped(); got != 1 {
		t.Fatalf("dropped = %d, want 1", got)
	}
	if records, _ := store.ListByEntity(ctx, "Contract", "1"); len(records) != 0 {
		t.Fatalf("expected no records after failed insert, got %d", len(records))
	}

	// Recovery: the next record goes through
	store.failing = false
	recorder.Record(ctx, NewAuditEntry("Contract", "1", models.AuditActionCreate))

	if records, _ := store.ListByEntity(ctx, "Contract", "1"); len(records) != 1 {
		t.Fatalf("expected 1 record after recovery, got %d", len(records))
	}
	if got := recorder.Dropped(); got != 1 {
		t.Errorf("dropped = %d, want still 1", got)
	}
}

func TestRecorderDropsUnserializableField(t *testing.T) {
	store := newMemAuditStore()
	recorder := NewAuditRecorder(store, nil, zap.NewNop())
	ctx := context.Background()

	recorder.Record(ctx, NewAuditEntry("Mail", "m-1", models.AuditActionCreate).
		NewValues(make(chan int)).
		Parameters(map[string]any{"reference": "2026/17"}))

	records, _ := store.ListByEntity(ctx, "Mail", "m-1")
	if len(records) != 1 {
		t.Fatalf("record should persist even with a bad payload field, got %d", len(records))
	}
	if records[0].NewValues != nil {
		t.Errorf("unserializable new_values should be dropped, got %v", *records[0].NewValues)
	}
	if params := models.DecodePayload(records[0].Parameters); params["reference"] != "2026/17" {
		t.Errorf("parameters = %v, want reference=2026/17", params)
	}
}

func TestRecorderFailedEntry(t *testing.T) {
	store := newMemAuditStore()
	recorder := NewAuditRecorder(store, nil, zap.NewNop())
	ctx := context.Background()

	cause := errors.New("contract not in draft")
	recorder.Record(ctx, NewAuditEntry("Contract", "7", models.AuditActionDelete).Failed(cause))

	records, _ := store.ListByEntity(ctx, "Contract", "7")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Status != models.AuditStatusFailed {
		t.Errorf("status = %q, want failed", records[0].Status)
	}
	if records[0].ErrorMessage == nil || *records[0].ErrorMessage != cause.Error() {
		t.Errorf("error_message = %v, want %q", records[0].ErrorMessage, cause.Error())
	}
}

func TestRecorderConcurrentRecords(t *testing.T) {
	store := newMemAuditStore()
	recorder := NewAuditRecorder(store, nil, zap.NewNop())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			recorder.Record(ctx, NewAuditEntry("Consultation", "c-9", models.AuditActionUpdate).
				Actor(models.Actor{Username: fmt.Sprintf("user-%d", i)}))
		}(i)
	}
	wg.Wait()

	records, _ := store.ListByEntity(ctx, "Consultation", "c-9")
	if len(records) != n {
		t.Fatalf("expected %d records, got %d", n, len(records))
	}
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if cur.Timestamp.After(prev.Timestamp) {
			t.Fatalf("records not ordered newest first at index %d", i)
		}
	}
	if recorder.Dropped() != 0 {
		t.Errorf("dropped = %d, want 0", recorder.Dropped())
	}
}

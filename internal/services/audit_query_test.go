package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/procurement-registry/backend/internal/models"
	"github.com/procurement-registry/backend/internal/repositories"
	"go.uber.org/zap"
)

// seedTrail records a small fixed scenario: alice updates Contract/42
// successfully, then bob fails to delete it.
func seedTrail(t *testing.T) (*memAuditStore, *AuditQueryService) {
	t.Helper()
	store := newMemAuditStore()
	recorder := NewAuditRecorder(store, nil, zap.NewNop())
	ctx := context.Background()

	recorder.Record(ctx, NewAuditEntry("Contract", "42", models.AuditActionUpdate).
		Actor(models.Actor{Username: "alice"}).
		NewValues(map[string]any{"status": "submitted"}))

	recorder.Record(ctx, NewAuditEntry("Contract", "42", models.AuditActionDelete).
		Actor(models.Actor{Username: "bob"}).
		Failed(errors.New("not in draft")))

	return store, NewAuditQueryService(store, zap.NewNop())
}

func TestEntityHistoryNewestFirst(t *testing.T) {
	_, queries := seedTrail(t)

	records, err := queries.EntityHistory(context.Background(), "Contract", "42")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Action != models.AuditActionDelete {
		t.Errorf("newest record action = %q, want delete", records[0].Action)
	}
	if records[1].Action != models.AuditActionUpdate {
		t.Errorf("oldest record action = %q, want update", records[1].Action)
	}

	// Unknown entity yields an empty history, not an error
	empty, err := queries.EntityHistory(context.Background(), "Contract", "nope")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty history, got %d records", len(empty))
	}
}

func TestFailedOperations(t *testing.T) {
	_, queries := seedTrail(t)

	records, err := queries.FailedOperations(context.Background(), repositories.Page{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 failed record, got %d", len(records))
	}
	if records[0].Username == nil || *records[0].Username != "bob" {
		t.Errorf("failed record username = %v, want bob", records[0].Username)
	}
	if records[0].ErrorMessage == nil || *records[0].ErrorMessage != "not in draft" {
		t.Errorf("error_message = %v, want 'not in draft'", records[0].ErrorMessage)
	}
}

func TestUserHistoryPaging(t *testing.T) {
	store := newMemAuditStore()
	recorder := NewAuditRecorder(store, nil, zap.NewNop())
	queries := NewAuditQueryService(store, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		recorder.Record(ctx, NewAuditEntry("Mail", "m-1", models.AuditActionUpdate).
			Actor(models.Actor{Username: "alice"}))
	}

	first, err := queries.UserHistory(ctx, "alice", repositories.Page{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 2 {
		t.Fatalf("first page: expected 2 records, got %d", len(first))
	}

	rest, err := queries.UserHistory(ctx, "alice", repositories.Page{Limit: 10, Offset: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 3 {
		t.Fatalf("second page: expected 3 records, got %d", len(rest))
	}
	if first[0].ID <= first[1].ID {
		t.Error("page should be ordered newest first")
	}
	if first[1].ID <= rest[0].ID {
		t.Error("pages should not overlap")
	}
}

func TestRecordsBetween(t *testing.T) {
	_, queries := seedTrail(t)
	ctx := context.Background()
	now := time.Now().UTC()

	records, err := queries.RecordsBetween(ctx, now.Add(-time.Hour), now.Add(time.Hour), repositories.Page{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records in window, got %d", len(records))
	}

	// Window in the past excludes everything
	old, err := queries.RecordsBetween(ctx, now.Add(-2*time.Hour), now.Add(-time.Hour), repositories.Page{})
	if err != nil {
		t.Fatal(err)
	}
	if len(old) != 0 {
		t.Errorf("expected no records in past window, got %d", len(old))
	}

	// Inverted range is rejected
	if _, err := queries.RecordsBetween(ctx, now, now.Add(-time.Hour), repositories.Page{}); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestUserActivity(t *testing.T) {
	store := newMemAuditStore()
	recorder := NewAuditRecorder(store, nil, zap.NewNop())
	queries := NewAuditQueryService(store, zap.NewNop())
	ctx := context.Background()

	actor := models.Actor{Username: "alice"}
	recorder.Record(ctx, NewAuditEntry("Contract", "1", models.AuditActionCreate).Actor(actor))
	recorder.Record(ctx, NewAuditEntry("Contract", "1", models.AuditActionUpdate).Actor(actor))
	recorder.Record(ctx, NewAuditEntry("Contract", "2", models.AuditActionCreate).Actor(actor))
	recorder.Record(ctx, NewAuditEntry("Contract", "3", models.AuditActionCreate).
		Actor(models.Actor{Username: "bob"}))

	summary, err := queries.UserActivity(ctx, "alice", 7)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	if summary.ByAction[models.AuditActionCreate] != 2 {
		t.Errorf("create count = %d, want 2", summary.ByAction[models.AuditActionCreate])
	}
	if summary.ByAction[models.AuditActionUpdate] != 1 {
		t.Errorf("update count = %d, want 1", summary.ByAction[models.AuditActionUpdate])
	}

	var sum int64
	for _, n := range summary.ByAction {
		sum += n
	}
	if sum != summary.Total {
		t.Errorf("total %d does not equal breakdown sum %d", summary.Total, sum)
	}

	// Non-positive lookback falls back to 30 days
	fallback, err := queries.UserActivity(ctx, "alice", 0)
	if err != nil {
		t.Fatal(err)
	}
	if fallback.Days != 30 {
		t.Errorf("days = %d, want 30", fallback.Days)
	}
}

package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/procurement-registry/backend/internal/models"
)

// Page is the limit/offset pair every paginated audit query accepts.
// Values are clamped here so callers can pass query params through as-is.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() Page {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

const auditColumns = `
	id, entity_name, entity_id, action, username, ip_address, user_agent,
	session_id, old_values, new_values, parameters, metadata, description,
	status, error_message, duration_ms, module, business_process,
	parent_audit_id, recorded_at
`

// AuditRepo owns the append-only audit_log table. There is deliberately
// no Update or Delete on it.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Insert commits one record and fills in its assigned id. Each call runs
// on its own pool connection, so it commits regardless of whatever
// transaction the calling business operation is in.
func (r *AuditRepo) Insert(ctx context.Context, rec *models.AuditRecord) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO audit_log (
			entity_name, entity_id, action, username, ip_address, user_agent,
			session_id, old_values, new_values, parameters, metadata, description,
			status, error_message, duration_ms, module, business_process,
			parent_audit_id, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`, rec.EntityName, rec.EntityID, rec.Action, rec.Username, rec.IPAddress,
		rec.UserAgent, rec.SessionID, rec.OldValues, rec.NewValues,
		rec.Parameters, rec.Metadata, rec.Description, rec.Status,
		rec.ErrorMessage, rec.DurationMS, rec.Module, rec.BusinessProcess,
		rec.ParentAuditID, rec.Timestamp,
	).Scan(&rec.ID)
}

// ListByEntity returns the full history of one entity instance, newest
// first. Unpaginated: per-entity volume stays small.
func (r *AuditRepo) ListByEntity(ctx context.Context, entityName, entityID string) ([]models.AuditRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+`
		FROM audit_log WHERE entity_name = $1 AND entity_id = $2
		ORDER BY recorded_at DESC, id DESC
	`, entityName, entityID)
	if err != nil {
		return nil, err
	}
	return scanAuditRows(rows)
}

func (r *AuditRepo) ListByUser(ctx context.Context, username string, p Page) ([]models.AuditRecord, error) {
	p = p.normalize()
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+`
		FROM audit_log WHERE username = $1
		ORDER BY recorded_at DESC, id DESC LIMIT $2 OFFSET $3
	`, username, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	return scanAuditRows(rows)
}

// ListByTimeRange returns records whose timestamp falls in [from, to].
func (r *AuditRepo) ListByTimeRange(ctx context.Context, from, to time.Time, p Page) ([]models.AuditRecord, error) {
	p = p.normalize()
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+`
		FROM audit_log WHERE recorded_at >= $1 AND recorded_at <= $2
		ORDER BY recorded_at DESC, id DESC LIMIT $3 OFFSET $4
	`, from, to, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	return scanAuditRows(rows)
}

func (r *AuditRepo) ListFailed(ctx context.Context, p Page) ([]models.AuditRecord, error) {
	p = p.normalize()
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+`
		FROM audit_log WHERE status = $1
		ORDER BY recorded_at DESC, id DESC LIMIT $2 OFFSET $3
	`, models.AuditStatusFailed, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	return scanAuditRows(rows)
}

// CountByActionSince feeds the activity summary: per-action record counts
// for one username from `since` onwards.
func (r *AuditRepo) CountByActionSince(ctx context.Context, username string, since time.Time) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT action, COUNT(*)
		FROM audit_log WHERE username = $1 AND recorded_at >= $2
		GROUP BY action
	`, username, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var action string
		var n int64
		if err := rows.Scan(&action, &n); err != nil {
			return nil, err
		}
		counts[action] = n
	}
	return counts, rows.Err()
}

func scanAuditRows(rows pgx.Rows) ([]models.AuditRecord, error) {
	defer rows.Close()

	var records []models.AuditRecord
	for rows.Next() {
		var rec models.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.EntityName, &rec.EntityID, &rec.Action,
			&rec.Username, &rec.IPAddress, &rec.UserAgent, &rec.SessionID,
			&rec.OldValues, &rec.NewValues, &rec.Parameters, &rec.Metadata,
			&rec.Description, &rec.Status, &rec.ErrorMessage, &rec.DurationMS,
			&rec.Module, &rec.BusinessProcess, &rec.ParentAuditID, &rec.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/procurement-registry/backend/internal/models"
)

type MailRepo struct {
	pool *pgxpool.Pool
}

func NewMailRepo(pool *pgxpool.Pool) *MailRepo {
	return &MailRepo{pool: pool}
}

func (r *MailRepo) Create(ctx context.Context, m *models.Mail) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO mail (reference, direction, year, correspondent,
		       subject_ar, subject_en, subject_fr, received_at, archive_location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, m.Reference, m.Direction, m.Year, m.Correspondent,
		m.Subject.Ar, m.Subject.En, m.Subject.Fr, m.ReceivedAt, m.ArchiveLocationID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MailRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Mail, error) {
	var m models.Mail
	err := r.pool.QueryRow(ctx, `
		SELECT id, reference, direction, year, correspondent,
		       subject_ar, subject_en, subject_fr, received_at,
		       archive_location_id, created_at, updated_at
		FROM mail WHERE id = $1
	`, id).Scan(&m.ID, &m.Reference, &m.Direction, &m.Year, &m.Correspondent,
		&m.Subject.Ar, &m.Subject.En, &m.Subject.Fr, &m.ReceivedAt,
		&m.ArchiveLocationID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ExistsByReference checks uniqueness of a reference within one direction
// and registry year.
func (r *MailRepo) ExistsByReference(ctx context.Context, reference, direction string, year int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM mail WHERE reference = $1 AND direction = $2 AND year = $3)
	`, reference, direction, year).Scan(&exists)
	return exists, err
}

func (r *MailRepo) Update(ctx context.Context, m *models.Mail) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE mail SET reference = $1, direction = $2, year = $3,
		       correspondent = $4, subject_ar = $5, subject_en = $6,
		       subject_fr = $7, received_at = $8, updated_at = now()
		WHERE id = $9
	`, m.Reference, m.Direction, m.Year, m.Correspondent,
		m.Subject.Ar, m.Subject.En, m.Subject.Fr, m.ReceivedAt, m.ID)
	return err
}

func (r *MailRepo) SetArchiveLocation(ctx context.Context, id, locationID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE mail SET archive_location_id = $1, updated_at = now() WHERE id = $2`,
		locationID, id)
	return err
}

type MailFilter struct {
	Direction *string
	Year      *int
	Archived  *bool
	Limit     int
	Offset    int
}

func (r *MailRepo) List(ctx context.Context, f MailFilter) ([]models.Mail, error) {
	query := `
		SELECT id, reference, direction, year, correspondent,
		       subject_ar, subject_en, subject_fr, received_at,
		       archive_location_id, created_at, updated_at
		FROM mail
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Direction != nil {
		where = append(where, fmt.Sprintf("direction = $%d", argIdx))
		args = append(args, *f.Direction)
		argIdx++
	}
	if f.Year != nil {
		where = append(where, fmt.Sprintf("year = $%d", argIdx))
		args = append(args, *f.Year)
		argIdx++
	}
	if f.Archived != nil {
		if *f.Archived {
			where = append(where, "archive_location_id IS NOT NULL")
		} else {
			where = append(where, "archive_location_id IS NULL")
		}
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Mail
	for rows.Next() {
		var m models.Mail
		if err := rows.Scan(&m.ID, &m.Reference, &m.Direction, &m.Year,
			&m.Correspondent, &m.Subject.Ar, &m.Subject.En, &m.Subject.Fr,
			&m.ReceivedAt, &m.ArchiveLocationID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/procurement-registry/backend/internal/models"
)

type ConsultationRepo struct {
	pool *pgxpool.Pool
}

func NewConsultationRepo(pool *pgxpool.Pool) *ConsultationRepo {
	return &ConsultationRepo{pool: pool}
}

func (r *ConsultationRepo) Create(ctx context.Context, c *models.Consultation) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO consultations (reference, object_ar, object_en, object_fr,
		       mode, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, c.Reference, c.Object.Ar, c.Object.En, c.Object.Fr,
		c.Mode, c.Deadline, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ConsultationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	var c models.Consultation
	err := r.pool.QueryRow(ctx, `
		SELECT id, reference, object_ar, object_en, object_fr, mode,
		       deadline, status, awarded_to, created_at, updated_at
		FROM consultations WHERE id = $1
	`, id).Scan(&c.ID, &c.Reference, &c.Object.Ar, &c.Object.En, &c.Object.Fr,
		&c.Mode, &c.Deadline, &c.Status, &c.AwardedTo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConsultationRepo) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM consultations WHERE reference = $1)`,
		reference).Scan(&exists)
	return exists, err
}

func (r *ConsultationRepo) Update(ctx context.Context, c *models.Consultation) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE consultations SET reference = $1, object_ar = $2, object_en = $3,
		       object_fr = $4, mode = $5, deadline = $6, updated_at = now()
		WHERE id = $7
	`, c.Reference, c.Object.Ar, c.Object.En, c.Object.Fr, c.Mode, c.Deadline, c.ID)
	return err
}

func (r *ConsultationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, awardedTo *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE consultations SET status = $1, awarded_to = $2, updated_at = now()
		WHERE id = $3
	`, status, awardedTo, id)
	return err
}

func (r *ConsultationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM consultations WHERE id = $1`, id)
	return err
}

type ConsultationFilter struct {
	Mode   *string
	Status *string
	Limit  int
	Offset int
}

func (r *ConsultationRepo) List(ctx context.Context, f ConsultationFilter) ([]models.Consultation, error) {
	query := `
		SELECT id, reference, object_ar, object_en, object_fr, mode,
		       deadline, status, awarded_to, created_at, updated_at
		FROM consultations
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Mode != nil {
		where = append(where, fmt.Sprintf("mode = $%d", argIdx))
		args = append(args, *f.Mode)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
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

	var consultations []models.Consultation
	for rows.Next() {
		var c models.Consultation
		if err := rows.Scan(&c.ID, &c.Reference, &c.Object.Ar, &c.Object.En,
			&c.Object.Fr, &c.Mode, &c.Deadline, &c.Status, &c.AwardedTo,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		consultations = append(consultations, c)
	}
	return consultations, rows.Err()
}

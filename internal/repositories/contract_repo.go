package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/procurement-registry/backend/internal/models"
)

type ContractRepo struct {
	pool *pgxpool.Pool
}

func NewContractRepo(pool *pgxpool.Pool) *ContractRepo {
	return &ContractRepo{pool: pool}
}

func (r *ContractRepo) Create(ctx context.Context, c *models.Contract) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO contracts (number, year, subject_ar, subject_en, subject_fr,
		       contractor, amount_da, phase, status, signed_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, c.Number, c.Year, c.Subject.Ar, c.Subject.En, c.Subject.Fr,
		c.Contractor, c.AmountDA, c.Phase, c.Status, c.SignedAt, c.ExpiresAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ContractRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var c models.Contract
	err := r.pool.QueryRow(ctx, `
		SELECT id, number, year, subject_ar, subject_en, subject_fr,
		       contractor, amount_da, phase, status, signed_at, expires_at,
		       created_at, updated_at
		FROM contracts WHERE id = $1
	`, id).Scan(&c.ID, &c.Number, &c.Year, &c.Subject.Ar, &c.Subject.En,
		&c.Subject.Fr, &c.Contractor, &c.AmountDA, &c.Phase, &c.Status,
		&c.SignedAt, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistsByNumber checks the per-year uniqueness of contract numbers.
func (r *ContractRepo) ExistsByNumber(ctx context.Context, number string, year int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM contracts WHERE number = $1 AND year = $2)`,
		number, year).Scan(&exists)
	return exists, err
}

func (r *ContractRepo) Update(ctx context.Context, c *models.Contract) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE contracts SET number = $1, year = $2, subject_ar = $3,
		       subject_en = $4, subject_fr = $5, contractor = $6, amount_da = $7,
		       phase = $8, signed_at = $9, expires_at = $10, updated_at = now()
		WHERE id = $11
	`, c.Number, c.Year, c.Subject.Ar, c.Subject.En, c.Subject.Fr,
		c.Contractor, c.AmountDA, c.Phase, c.SignedAt, c.ExpiresAt, c.ID)
	return err
}

func (r *ContractRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE contracts SET status = $1, updated_at = now() WHERE id = $2`,
		status, id)
	return err
}

func (r *ContractRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	return err
}

type ContractFilter struct {
	Year       *int
	Phase      *string
	Status     *string
	Contractor *string
	Limit      int
	Offset     int
}

func (r *ContractRepo) List(ctx context.Context, f ContractFilter) ([]models.Contract, error) {
	query := `
		SELECT id, number, year, subject_ar, subject_en, subject_fr,
		       contractor, amount_da, phase, status, signed_at, expires_at,
		       created_at, updated_at
		FROM contracts
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Year != nil {
		where = append(where, fmt.Sprintf("year = $%d", argIdx))
		args = append(args, *f.Year)
		argIdx++
	}
	if f.Phase != nil {
		where = append(where, fmt.Sprintf("phase = $%d", argIdx))
		args = append(args, *f.Phase)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if f.Contractor != nil {
		where = append(where, fmt.Sprintf("contractor = $%d", argIdx))
		args = append(args, *f.Contractor)
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
	query += fmt.Sprintf(" ORDER BY year DESC, number DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var c models.Contract
		if err := rows.Scan(&c.ID, &c.Number, &c.Year, &c.Subject.Ar,
			&c.Subject.En, &c.Subject.Fr, &c.Contractor, &c.AmountDA,
			&c.Phase, &c.Status, &c.SignedAt, &c.ExpiresAt,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

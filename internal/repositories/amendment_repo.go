package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/procurement-registry/backend/internal/models"
)

type AmendmentRepo struct {
	pool *pgxpool.Pool
}

func NewAmendmentRepo(pool *pgxpool.Pool) *AmendmentRepo {
	return &AmendmentRepo{pool: pool}
}

func (r *AmendmentRepo) Create(ctx context.Context, a *models.Amendment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO amendments (contract_id, number, object_ar, object_en, object_fr,
		       amount_delta, extension_days, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, a.ContractID, a.Number, a.Object.Ar, a.Object.En, a.Object.Fr,
		a.AmountDelta, a.ExtensionDays, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AmendmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Amendment, error) {
	var a models.Amendment
	err := r.pool.QueryRow(ctx, `
		SELECT id, contract_id, number, object_ar, object_en, object_fr,
		       amount_delta, extension_days, status, created_at, updated_at
		FROM amendments WHERE id = $1
	`, id).Scan(&a.ID, &a.ContractID, &a.Number, &a.Object.Ar, &a.Object.En,
		&a.Object.Fr, &a.AmountDelta, &a.ExtensionDays, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// NextNumber returns the next avenant number for a contract (1-based).
func (r *AmendmentRepo) NextNumber(ctx context.Context, contractID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM amendments WHERE contract_id = $1`,
		contractID).Scan(&n)
	return n, err
}

func (r *AmendmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE amendments SET status = $1, updated_at = now() WHERE id = $2`,
		status, id)
	return err
}

func (r *AmendmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM amendments WHERE id = $1`, id)
	return err
}

func (r *AmendmentRepo) ListByContract(ctx context.Context, contractID uuid.UUID) ([]models.Amendment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, contract_id, number, object_ar, object_en, object_fr,
		       amount_delta, extension_days, status, created_at, updated_at
		FROM amendments WHERE contract_id = $1
		ORDER BY number ASC
	`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amendments []models.Amendment
	for rows.Next() {
		var a models.Amendment
		if err := rows.Scan(&a.ID, &a.ContractID, &a.Number, &a.Object.Ar,
			&a.Object.En, &a.Object.Fr, &a.AmountDelta, &a.ExtensionDays,
			&a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		amendments = append(amendments, a)
	}
	return amendments, rows.Err()
}

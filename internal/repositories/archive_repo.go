package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/procurement-registry/backend/internal/models"
)

type ArchiveRepo struct {
	pool *pgxpool.Pool
}

func NewArchiveRepo(pool *pgxpool.Pool) *ArchiveRepo {
	return &ArchiveRepo{pool: pool}
}

func (r *ArchiveRepo) Create(ctx context.Context, loc *models.ArchiveLocation) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO archive_locations (code, room, cabinet, shelf, box,
		       label_ar, label_en, label_fr)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, loc.Code, loc.Room, loc.Cabinet, loc.Shelf, loc.Box,
		loc.Label.Ar, loc.Label.En, loc.Label.Fr,
	).Scan(&loc.ID, &loc.CreatedAt)
}

func (r *ArchiveRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ArchiveLocation, error) {
	var loc models.ArchiveLocation
	err := r.pool.QueryRow(ctx, `
		SELECT id, code, room, cabinet, shelf, box,
		       label_ar, label_en, label_fr, created_at
		FROM archive_locations WHERE id = $1
	`, id).Scan(&loc.ID, &loc.Code, &loc.Room, &loc.Cabinet, &loc.Shelf,
		&loc.Box, &loc.Label.Ar, &loc.Label.En, &loc.Label.Fr, &loc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *ArchiveRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM archive_locations WHERE code = $1)`,
		code).Scan(&exists)
	return exists, err
}

func (r *ArchiveRepo) Update(ctx context.Context, loc *models.ArchiveLocation) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE archive_locations SET label_ar = $1, label_en = $2, label_fr = $3
		WHERE id = $4
	`, loc.Label.Ar, loc.Label.En, loc.Label.Fr, loc.ID)
	return err
}

func (r *ArchiveRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM archive_locations WHERE id = $1`, id)
	return err
}

// InUse reports whether any mail still references the location; such
// locations must not be deleted.
func (r *ArchiveRepo) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	var inUse bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM mail WHERE archive_location_id = $1)`,
		id).Scan(&inUse)
	return inUse, err
}

func (r *ArchiveRepo) List(ctx context.Context, limit, offset int) ([]models.ArchiveLocation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, room, cabinet, shelf, box,
		       label_ar, label_en, label_fr, created_at
		FROM archive_locations
		ORDER BY code ASC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.ArchiveLocation
	for rows.Next() {
		var loc models.ArchiveLocation
		if err := rows.Scan(&loc.ID, &loc.Code, &loc.Room, &loc.Cabinet,
			&loc.Shelf, &loc.Box, &loc.Label.Ar, &loc.Label.En,
			&loc.Label.Fr, &loc.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

package repository

import (
	"context"
	"errors"

	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PackageRepository handles the billing-tier catalog.
type PackageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository creates a new PackageRepository.
func NewPackageRepository(pool *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{pool: pool}
}

// GetByName retrieves an active package by its unique name.
func (r *PackageRepository) GetByName(ctx context.Context, name string) (*model.Package, error) {
	p := &model.Package{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, total_classes, duration_days, price, description, is_active, created_at
		 FROM packages WHERE name = $1 AND is_active`, name,
	).Scan(&p.ID, &p.Name, &p.TotalClasses, &p.DurationDays, &p.Price, &p.Description, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListActive retrieves the active catalog ordered by duration.
func (r *PackageRepository) ListActive(ctx context.Context) ([]model.Package, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, total_classes, duration_days, price, description, is_active, created_at
		 FROM packages WHERE is_active ORDER BY duration_days`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []model.Package
	for rows.Next() {
		var p model.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.TotalClasses, &p.DurationDays, &p.Price, &p.Description, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

// Create inserts a new billing tier.
func (r *PackageRepository) Create(ctx context.Context, p *model.Package) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO packages (name, total_classes, duration_days, price, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, is_active, created_at`,
		p.Name, p.TotalClasses, p.DurationDays, p.Price, p.Description,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Deactivate hides a package from the catalog. Students keep their
// snapshotted class counts, so retiring a tier never rewrites history.
func (r *PackageRepository) Deactivate(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE packages SET is_active = FALSE WHERE name = $1 AND name <> $2`,
		name, model.NoPackageName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

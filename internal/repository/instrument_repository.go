package repository

import (
	"context"

	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InstrumentRepository handles the taught-instruments catalog.
type InstrumentRepository struct {
	pool *pgxpool.Pool
}

// NewInstrumentRepository creates a new InstrumentRepository.
func NewInstrumentRepository(pool *pgxpool.Pool) *InstrumentRepository {
	return &InstrumentRepository{pool: pool}
}

// ListActive retrieves all active instruments in display order.
func (r *InstrumentRepository) ListActive(ctx context.Context) ([]model.Instrument, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, instrument_name, emoji, is_active
		 FROM instruments WHERE is_active ORDER BY instrument_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instruments []model.Instrument
	for rows.Next() {
		var i model.Instrument
		if err := rows.Scan(&i.ID, &i.Name, &i.Emoji, &i.IsActive); err != nil {
			return nil, err
		}
		instruments = append(instruments, i)
	}
	return instruments, rows.Err()
}

// Create inserts a new instrument.
func (r *InstrumentRepository) Create(ctx context.Context, i *model.Instrument) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO instruments (instrument_name, emoji) VALUES ($1, $2)
		 RETURNING id, is_active`,
		i.Name, i.Emoji,
	).Scan(&i.ID, &i.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Deactivate hides an instrument from the catalog.
func (r *InstrumentRepository) Deactivate(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE instruments SET is_active = FALSE WHERE instrument_name = $1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"

	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingRepository handles the app_settings key-value store.
type SettingRepository struct {
	pool *pgxpool.Pool
}

// NewSettingRepository creates a new SettingRepository.
func NewSettingRepository(pool *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{pool: pool}
}

// GetAll retrieves every setting as a key/value map.
func (r *SettingRepository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// Get retrieves a single setting.
func (r *SettingRepository) Get(ctx context.Context, key string) (*model.AppSetting, error) {
	s := &model.AppSetting{Key: key}
	err := r.pool.QueryRow(ctx,
		`SELECT value, updated_at FROM app_settings WHERE key = $1`, key,
	).Scan(&s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return s, nil
}

// Upsert writes one setting, creating the key if it does not exist.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO app_settings (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	return err
}

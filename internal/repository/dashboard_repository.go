package repository

import (
	"context"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository computes the console summary counts.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts rolls up the home-screen numbers in one round trip.
// Active/expired split on expiry_date relative to today; students on the
// sentinel plan count toward the total only.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context, today time.Time) (*model.DashboardStats, error) {
	day := dateutil.StartOfDay(today)
	stats := &model.DashboardStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM students),
		   (SELECT COUNT(*) FROM students WHERE class_plan <> $2 AND expiry_date >= $1),
		   (SELECT COUNT(*) FROM students WHERE class_plan <> $2 AND expiry_date < $1),
		   (SELECT COUNT(*) FROM attendance WHERE marked_on = $1)`,
		day, model.NoPackageName,
	).Scan(&stats.TotalStudents, &stats.ActiveStudents, &stats.ExpiredStudents, &stats.TodayAttendance)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

package service

import (
	"context"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
)

// DashboardService serves the console home screen and due alerts.
type DashboardService struct {
	cfg           *config.Config
	dashboardRepo *repository.DashboardRepository
	studentRepo   *repository.StudentRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(cfg *config.Config, dashboardRepo *repository.DashboardRepository, studentRepo *repository.StudentRepository) *DashboardService {
	return &DashboardService{
		cfg:           cfg,
		dashboardRepo: dashboardRepo,
		studentRepo:   studentRepo,
	}
}

// GetStats computes the home-screen counts live; nothing is cached
// because stale numbers on a billing screen cost real money.
func (s *DashboardService) GetStats(ctx context.Context) (*model.DashboardStats, error) {
	return s.dashboardRepo.GetSummaryCounts(ctx, dateutil.Today())
}

// GetDueAlerts returns students whose plans are past or inside the
// renewal window. windowDays <= 0 falls back to the configured default.
func (s *DashboardService) GetDueAlerts(ctx context.Context, windowDays int) (*model.DueAlerts, error) {
	if windowDays <= 0 {
		windowDays = s.cfg.DueWindowDays
	}

	today := dateutil.Today()
	windowEnd := dateutil.NewDate(dateutil.AddDays(today, windowDays))

	students, err := s.studentRepo.ListDueBefore(ctx, windowEnd)
	if err != nil {
		return nil, err
	}

	alerts := PartitionDue(students, today, windowDays)
	return alerts, nil
}

// PartitionDue splits students into overdue (expiry already past) and
// due-soon (expiry inside the window, today included). Pure; the caller
// supplies rows already bounded by the window end.
func PartitionDue(students []model.Student, today time.Time, windowDays int) *model.DueAlerts {
	alerts := &model.DueAlerts{
		WindowDays: windowDays,
		Overdue:    []model.Student{},
		DueSoon:    []model.Student{},
	}

	day := dateutil.StartOfDay(today)
	for _, st := range students {
		if day.After(st.ExpiryDate.Time) {
			alerts.Overdue = append(alerts.Overdue, st)
		} else {
			alerts.DueSoon = append(alerts.DueSoon, st)
		}
	}
	return alerts
}

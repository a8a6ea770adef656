package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// AttendanceService marks classes and serves the attendance views.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, rdb *redis.Client, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		rdb:            rdb,
		log:            log.With().Str("component", "attendance_service").Logger(),
	}
}

// MarkResult is what the operator sees after a mark.
type MarkResult struct {
	Kind      model.AttendanceKind `json:"kind"`
	Message   string               `json:"message"`
	Student   *model.Student       `json:"student"`
	Remaining int                  `json:"remaining_classes"`
}

// Mark records one class for the student today. Classification and the
// counter update run in a single transaction against a locked row; marks
// are deliberately not idempotent, two scans today are two classes. After
// commit the mark is published for the live console feed.
func (s *AttendanceService) Mark(ctx context.Context, studentID, notes string) (*MarkResult, error) {
	now := dateutil.Now()

	decision, student, err := s.attendanceRepo.Mark(ctx, studentID, now, notes)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("student_id", studentID).
		Str("kind", string(decision.Kind)).
		Msg("Attendance marked")

	s.publishEvent(ctx, student, decision.Kind, now)

	return &MarkResult{
		Kind:      decision.Kind,
		Message:   decision.Message,
		Student:   student,
		Remaining: student.RemainingClasses(),
	}, nil
}

// publishEvent pushes the mark onto the attendance channel. Best-effort:
// the mark is already committed, a lost event only stales the live feed.
func (s *AttendanceService) publishEvent(ctx context.Context, student *model.Student, kind model.AttendanceKind, now time.Time) {
	event := model.AttendanceEvent{
		StudentID: student.StudentID,
		FullName:  student.FullName,
		Kind:      kind,
		MarkedOn:  dateutil.Format(now),
		MarkedAt:  now.In(dateutil.AcademyTZ).Format("15:04:05"),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.AttendanceEventChannel(), data).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Attendance event publish failed")
	}
}

// ListByStudent returns a student's recent marks, newest first.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID string, limit int) ([]model.Attendance, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	marks, err := s.attendanceRepo.ListByStudent(ctx, studentID, limit)
	if err != nil {
		return nil, err
	}
	if marks == nil {
		marks = []model.Attendance{}
	}
	return marks, nil
}

// ListToday returns every mark recorded today.
func (s *AttendanceService) ListToday(ctx context.Context) ([]model.Attendance, error) {
	marks, err := s.attendanceRepo.ListOnDate(ctx, dateutil.NewDate(dateutil.Today()))
	if err != nil {
		return nil, err
	}
	if marks == nil {
		marks = []model.Attendance{}
	}
	return marks, nil
}

package repository

import (
	"context"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceRepository handles attendance marks and their counter updates.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Mark classifies and records one attendance mark. The student row is
// locked, classified, and both the attendance insert and the counter
// update commit in a single transaction, so a crash can never leave the
// mark and the counter out of sync.
func (r *AttendanceRepository) Mark(ctx context.Context, studentID string, now time.Time, notes string) (model.AttendanceDecision, *model.Student, error) {
	var decision model.AttendanceDecision

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return decision, nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id = $1 FOR UPDATE`, studentID)
	student, err := scanStudent(row)
	if err != nil {
		return decision, nil, err
	}

	decision = model.ClassifyAttendance(student, now)
	markedOn := dateutil.NewDate(now)
	markedAt := now.In(dateutil.AcademyTZ).Format("15:04:05")

	_, err = tx.Exec(ctx,
		`INSERT INTO attendance (student_id, marked_on, marked_at, kind, notes)
		 VALUES ($1, $2, $3, $4, $5)`,
		studentID, markedOn, markedAt, decision.Kind, notes)
	if err != nil {
		return decision, nil, err
	}

	if decision.Kind == model.KindRegular {
		_, err = tx.Exec(ctx,
			`UPDATE students
			 SET classes_completed = classes_completed + 1,
			     first_class_date = COALESCE(first_class_date, $1),
			     updated_at = NOW()
			 WHERE student_id = $2`, markedOn, studentID)
		student.ClassesCompleted++
		if decision.FirstClass {
			student.FirstClassDate = markedOn
		}
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE students
			 SET extra_classes = extra_classes + 1, updated_at = NOW()
			 WHERE student_id = $1`, studentID)
		student.ExtraClasses++
	}
	if err != nil {
		return decision, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decision, nil, err
	}
	return decision, student, nil
}

// ListByStudent retrieves a student's marks, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string, limit int) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, marked_on, marked_at, kind, notes, created_at
		 FROM attendance WHERE student_id = $1
		 ORDER BY marked_on DESC, marked_at DESC LIMIT $2`, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.MarkedOn, &a.MarkedAt, &a.Kind, &a.Notes, &a.CreatedAt); err != nil {
			return nil, err
		}
		marks = append(marks, a)
	}
	return marks, rows.Err()
}

// ListOnDate retrieves every mark on a given day, for the daily register.
func (r *AttendanceRepository) ListOnDate(ctx context.Context, day dateutil.Date) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, marked_on, marked_at, kind, notes, created_at
		 FROM attendance WHERE marked_on = $1
		 ORDER BY marked_at`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.MarkedOn, &a.MarkedAt, &a.Kind, &a.Notes, &a.CreatedAt); err != nil {
			return nil, err
		}
		marks = append(marks, a)
	}
	return marks, rows.Err()
}

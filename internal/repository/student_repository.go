package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentColumns = `id, student_id, full_name, age, mobile, email, date_of_birth, sex, instrument,
	 class_plan, total_classes, start_date, expiry_date, classes_completed, extra_classes,
	 first_class_date, created_at, updated_at`

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(
		&s.ID, &s.StudentID, &s.FullName, &s.Age, &s.Mobile, &s.Email, &s.DateOfBirth, &s.Sex,
		&s.Instrument, &s.ClassPlan, &s.TotalClasses, &s.StartDate, &s.ExpiryDate,
		&s.ClassesCompleted, &s.ExtraClasses, &s.FirstClassDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetByStudentID retrieves a student by their academy ID (e.g. CHORDS001).
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id = $1`, studentID)
	return scanStudent(row)
}

// ListPaginated retrieves students with pagination and an optional search
// term matched against name and academy ID.
func (r *StudentRepository) ListPaginated(ctx context.Context, search string, limit, offset int) ([]model.Student, int, error) {
	countQuery := `SELECT COUNT(*) FROM students`
	listQuery := `SELECT ` + studentColumns + ` FROM students`
	var countArgs, listArgs []interface{}
	argIdx := 1

	if search != "" {
		filter := ` WHERE full_name ILIKE $1 OR student_id ILIKE $1`
		countQuery += filter
		listQuery += filter
		pattern := "%" + search + "%"
		countArgs = append(countArgs, pattern)
		listArgs = append(listArgs, pattern)
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery += ` ORDER BY student_id LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	listArgs = append(listArgs, limit, offset)

	rows, err := r.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *s)
	}
	return students, total, rows.Err()
}

// ListDueBefore retrieves every student whose package expires on or before
// the window end, already-expired students included. Ordering is oldest
// expiry first so the most overdue surface at the top of the alert list.
func (r *StudentRepository) ListDueBefore(ctx context.Context, windowEnd dateutil.Date) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE class_plan <> $1 AND expiry_date <= $2
		 ORDER BY expiry_date`, model.NoPackageName, windowEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// ListNotEnrolled retrieves students without a biometric enrollment row.
func (r *StudentRepository) ListNotEnrolled(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students s
		 WHERE NOT EXISTS (SELECT 1 FROM biometric_enrollments e WHERE e.student_id = s.student_id)
		 ORDER BY student_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// Register inserts a new student, allocating the next sequential academy ID
// inside the same transaction. IDs derive from the highest issued ID and
// are never reused after deletes; the row count is only a parse fallback.
func (r *StudentRepository) Register(ctx context.Context, s *model.Student, prefix string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lastID string
	err = tx.QueryRow(ctx,
		`SELECT student_id FROM students
		 ORDER BY length(student_id) DESC, student_id DESC
		 LIMIT 1 FOR UPDATE`).Scan(&lastID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return err
	}

	s.StudentID = model.FormatStudentID(prefix, model.NextStudentNumber(lastID, prefix, count))

	err = tx.QueryRow(ctx,
		`INSERT INTO students (student_id, full_name, age, mobile, email, date_of_birth, sex, instrument,
		                       class_plan, total_classes, start_date, expiry_date, first_class_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULL)
		 RETURNING id, created_at, updated_at`,
		s.StudentID, s.FullName, s.Age, s.Mobile, s.Email, s.DateOfBirth, s.Sex, s.Instrument,
		s.ClassPlan, s.TotalClasses, s.StartDate, s.ExpiryDate,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	return tx.Commit(ctx)
}

// Update modifies a student's descriptive attributes. Ledger counters and
// dates are only touched by the attendance and payment operations.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET full_name = $1, age = $2, mobile = $3, email = $4, date_of_birth = $5,
		     sex = $6, instrument = $7, updated_at = NOW()
		 WHERE student_id = $8`,
		s.FullName, s.Age, s.Mobile, s.Email, s.DateOfBirth, s.Sex, s.Instrument, s.StudentID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a student; attendance, payments and the biometric
// enrollment cascade with the row.
func (r *StudentRepository) Delete(ctx context.Context, studentID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE student_id = $1`, studentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

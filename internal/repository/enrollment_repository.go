package repository

import (
	"context"

	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnrollmentRepository handles fingerprint enrollment records.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// GetByStudentID retrieves an enrollment by the student's display ID.
func (r *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID string) (*model.BiometricEnrollment, error) {
	e := &model.BiometricEnrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, template_id, device_serial, enrolled_at
		 FROM biometric_enrollments WHERE student_id = $1`, studentID,
	).Scan(&e.ID, &e.StudentID, &e.TemplateID, &e.DeviceSerial, &e.EnrolledAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return e, nil
}

// GetByTemplateID maps a scanner hit back to a student.
func (r *EnrollmentRepository) GetByTemplateID(ctx context.Context, templateID string) (*model.BiometricEnrollment, error) {
	e := &model.BiometricEnrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, template_id, device_serial, enrolled_at
		 FROM biometric_enrollments WHERE template_id = $1`, templateID,
	).Scan(&e.ID, &e.StudentID, &e.TemplateID, &e.DeviceSerial, &e.EnrolledAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return e, nil
}

// Create records that a student's fingerprint template lives on the
// device. A second enrollment for the same student maps to ErrDuplicate.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.BiometricEnrollment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO biometric_enrollments (student_id, template_id, device_serial)
		 VALUES ($1, $2, $3)
		 RETURNING id, enrolled_at`,
		e.StudentID, e.TemplateID, e.DeviceSerial,
	).Scan(&e.ID, &e.EnrolledAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes an enrollment so the student can be re-enrolled.
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM biometric_enrollments WHERE student_id = $1`, studentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package service

import (
	"context"
	"errors"

	"github.com/chords-academy/chords-crm-backend/internal/biometric"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrAlreadyEnrolled is returned when a student already has a fingerprint
// template on the device.
var ErrAlreadyEnrolled = errors.New("student already enrolled")

// BiometricService bridges the desk scanner and the attendance ledger.
type BiometricService struct {
	scanner        biometric.Scanner
	enrollmentRepo *repository.EnrollmentRepository
	studentRepo    *repository.StudentRepository
	attendance     *AttendanceService
	log            zerolog.Logger
}

// NewBiometricService creates a new BiometricService.
func NewBiometricService(scanner biometric.Scanner, enrollmentRepo *repository.EnrollmentRepository, studentRepo *repository.StudentRepository, attendance *AttendanceService, log zerolog.Logger) *BiometricService {
	return &BiometricService{
		scanner:        scanner,
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		attendance:     attendance,
		log:            log.With().Str("component", "biometric_service").Logger(),
	}
}

// DeviceInfo reports the scanner state for the console status widget.
func (s *BiometricService) DeviceInfo() biometric.DeviceInfo {
	return s.scanner.DeviceInfo()
}

// Connect brings the scanner online.
func (s *BiometricService) Connect(ctx context.Context) error {
	return s.scanner.Connect(ctx)
}

// Disconnect takes the scanner offline.
func (s *BiometricService) Disconnect(ctx context.Context) error {
	return s.scanner.Disconnect(ctx)
}

// Enroll captures a fingerprint for the student and records the template.
// Students enroll at most once; re-enrollment requires deleting first.
func (s *BiometricService) Enroll(ctx context.Context, studentID string) (*model.BiometricEnrollment, error) {
	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.enrollmentRepo.GetByStudentID(ctx, student.StudentID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	templateID, err := s.scanner.Enroll(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}

	enrollment := &model.BiometricEnrollment{
		StudentID:    student.StudentID,
		TemplateID:   templateID,
		DeviceSerial: s.scanner.DeviceInfo().Serial,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	s.log.Info().Str("student_id", student.StudentID).Msg("Fingerprint enrolled")
	return enrollment, nil
}

// IdentifyAndMark runs one scan cycle at the desk: capture a finger, map
// the template to a student, and put the mark through the normal
// attendance path.
func (s *BiometricService) IdentifyAndMark(ctx context.Context) (*MarkResult, error) {
	templateID, err := s.scanner.Identify(ctx)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.GetByTemplateID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, biometric.ErrNoMatch
		}
		return nil, err
	}

	return s.attendance.Mark(ctx, enrollment.StudentID, "biometric")
}

// RemoveEnrollment deletes a student's template record.
func (s *BiometricService) RemoveEnrollment(ctx context.Context, studentID string) error {
	return s.enrollmentRepo.Delete(ctx, studentID)
}

// ListNotEnrolled returns students without a fingerprint on file, the
// console's enrollment worklist.
func (s *BiometricService) ListNotEnrolled(ctx context.Context) ([]model.Student, error) {
	students, err := s.studentRepo.ListNotEnrolled(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/chords-academy/chords-crm-backend/internal/response"
	"github.com/rs/zerolog"
)

// ErrInvalidDate is returned when a date string does not parse. Bad dates
// reject the request; they are never silently defaulted.
var ErrInvalidDate = errors.New("invalid date")

// minDateOfBirth is the oldest accepted date of birth. Anything earlier is
// almost certainly an import typo.
var minDateOfBirth = dateutil.MidnightDate(1950, 1, 1)

// validDateOfBirth checks a parsed dob against the accepted range.
func validDateOfBirth(dob dateutil.Date) bool {
	return !dob.Before(minDateOfBirth) && !dob.After(dateutil.Today())
}

// StudentService handles registration and the student admin screens.
type StudentService struct {
	cfg            *config.Config
	studentRepo    *repository.StudentRepository
	attendanceRepo *repository.AttendanceRepository
	paymentRepo    *repository.PaymentRepository
	packages       *PackageService
	log            zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(cfg *config.Config, studentRepo *repository.StudentRepository, attendanceRepo *repository.AttendanceRepository, paymentRepo *repository.PaymentRepository, packages *PackageService, log zerolog.Logger) *StudentService {
	return &StudentService{
		cfg:            cfg,
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		paymentRepo:    paymentRepo,
		packages:       packages,
		log:            log.With().Str("component", "student_service").Logger(),
	}
}

// Register creates a student: the plan is resolved against the catalog,
// the class count is snapshotted onto the student row, and the expiry is
// derived from the start date. The display ID is allocated inside the
// insert transaction.
func (s *StudentService) Register(ctx context.Context, req *model.RegisterStudentRequest) (*model.Student, error) {
	dob, err := dateutil.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_birth %q", ErrInvalidDate, req.DateOfBirth)
	}
	if !validDateOfBirth(dob) {
		return nil, fmt.Errorf("%w: date_of_birth %q out of range", ErrInvalidDate, req.DateOfBirth)
	}
	start, err := dateutil.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q", ErrInvalidDate, req.StartDate)
	}

	pkg, err := s.packages.GetByName(ctx, req.ClassPlan)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		FullName:     req.FullName,
		Age:          req.Age,
		Mobile:       req.Mobile,
		Email:        req.Email,
		DateOfBirth:  dob,
		Sex:          req.Sex,
		Instrument:   req.Instrument,
		ClassPlan:    pkg.Name,
		TotalClasses: pkg.TotalClasses,
		StartDate:    start,
		ExpiryDate:   pkg.ExpiryFrom(start),
	}

	if err := s.studentRepo.Register(ctx, student, s.cfg.StudentIDPrefix); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("student_id", student.StudentID).
		Str("plan", student.ClassPlan).
		Msg("Student registered")
	return student, nil
}

// ListStudents retrieves students with pagination and optional search by
// name or display ID.
func (s *StudentService) ListStudents(ctx context.Context, search string, page, perPage int) ([]model.Student, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	students, total, err := s.studentRepo.ListPaginated(ctx, search, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if students == nil {
		students = []model.Student{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return students, pagination, nil
}

// StudentDetail is the per-student admin view: the row plus its derived
// status and the attached ledgers.
type StudentDetail struct {
	Student    *model.Student      `json:"student"`
	Status     model.StudentStatus `json:"status"`
	Remaining  int                 `json:"remaining_classes"`
	Attendance []model.Attendance  `json:"attendance"`
	Payments   []model.Payment     `json:"payments"`
	TotalPaid  float64             `json:"total_paid"`
}

// GetDetail assembles the full per-student view.
func (s *StudentService) GetDetail(ctx context.Context, studentID string) (*StudentDetail, error) {
	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	attendance, err := s.attendanceRepo.ListByStudent(ctx, studentID, 50)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.paymentRepo.TotalPaid(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if attendance == nil {
		attendance = []model.Attendance{}
	}
	if payments == nil {
		payments = []model.Payment{}
	}

	return &StudentDetail{
		Student:    student,
		Status:     student.Status(dateutil.Today()),
		Remaining:  student.RemainingClasses(),
		Attendance: attendance,
		Payments:   payments,
		TotalPaid:  totalPaid,
	}, nil
}

// GetByStudentID retrieves a single student row.
func (s *StudentService) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	return s.studentRepo.GetByStudentID(ctx, studentID)
}

// Update modifies a student's descriptive attributes. Plan, counters and
// dates are only ever mutated by registration, attendance and payments.
func (s *StudentService) Update(ctx context.Context, studentID string, req *model.UpdateStudentRequest) (*model.Student, error) {
	dob, err := dateutil.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_birth %q", ErrInvalidDate, req.DateOfBirth)
	}
	if !validDateOfBirth(dob) {
		return nil, fmt.Errorf("%w: date_of_birth %q out of range", ErrInvalidDate, req.DateOfBirth)
	}

	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	student.FullName = req.FullName
	student.Age = req.Age
	student.Mobile = req.Mobile
	student.Email = req.Email
	student.DateOfBirth = dob
	student.Sex = req.Sex
	student.Instrument = req.Instrument

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student; attendance and payments cascade with the row.
func (s *StudentService) Delete(ctx context.Context, studentID string) error {
	if err := s.studentRepo.Delete(ctx, studentID); err != nil {
		return err
	}
	s.log.Info().Str("student_id", studentID).Msg("Student deleted")
	return nil
}

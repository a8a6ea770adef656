package service

import (
	"context"
	"fmt"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/rs/zerolog"
)

// PaymentService records fee payments and optional plan renewals.
type PaymentService struct {
	cfg           *config.Config
	paymentRepo   *repository.PaymentRepository
	studentRepo   *repository.StudentRepository
	packages      *PackageService
	notifications *NotificationService
	log           zerolog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(cfg *config.Config, paymentRepo *repository.PaymentRepository, studentRepo *repository.StudentRepository, packages *PackageService, notifications *NotificationService, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		cfg:           cfg,
		paymentRepo:   paymentRepo,
		studentRepo:   studentRepo,
		packages:      packages,
		notifications: notifications,
		log:           log.With().Str("component", "payment_service").Logger(),
	}
}

// PaymentResult is the operator-facing outcome of a payment.
type PaymentResult struct {
	Payment      *model.Payment            `json:"payment"`
	Student      *model.Student            `json:"student"`
	Notification *model.NotificationResult `json:"notification,omitempty"`
}

// ProcessPayment records a payment and, when the operator chose a renewal,
// moves the student onto the new plan in the same transaction. A renewal is
// always explicit; the amount alone never changes the plan. The receipt is
// sent after commit and its failure never rolls the payment back.
func (s *PaymentService) ProcessPayment(ctx context.Context, req *model.ProcessPaymentRequest) (*PaymentResult, error) {
	student, err := s.studentRepo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		StudentID:     student.StudentID,
		Amount:        req.Amount,
		PaymentDate:   dateutil.NewDate(dateutil.Today()),
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	}

	if req.NextDueDate != "" {
		due, err := dateutil.ParseDate(req.NextDueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: next_due_date %q", ErrInvalidDate, req.NextDueDate)
		}
		payment.NextDueDate = due
	}

	var renewal *model.PlanRenewal
	if req.RenewPlan != "" {
		pkg, err := s.packages.GetByName(ctx, req.RenewPlan)
		if err != nil {
			return nil, err
		}

		start := dateutil.NewDate(dateutil.Today())
		if req.RenewStart != "" {
			start, err = dateutil.ParseDate(req.RenewStart)
			if err != nil {
				return nil, fmt.Errorf("%w: renew_start %q", ErrInvalidDate, req.RenewStart)
			}
		}

		renewal = &model.PlanRenewal{
			ClassPlan:    pkg.Name,
			TotalClasses: pkg.TotalClasses,
			StartDate:    start,
			ExpiryDate:   pkg.ExpiryFrom(start),
		}
	}

	if err := s.paymentRepo.Create(ctx, payment, renewal, s.cfg.ReceiptPrefix); err != nil {
		return nil, err
	}

	if renewal != nil {
		student.ClassPlan = renewal.ClassPlan
		student.TotalClasses = renewal.TotalClasses
		student.StartDate = renewal.StartDate
		student.ExpiryDate = renewal.ExpiryDate
		student.ClassesCompleted = 0
	}

	s.log.Info().
		Str("student_id", student.StudentID).
		Str("receipt", payment.ReceiptNumber).
		Float64("amount", payment.Amount).
		Bool("renewed", renewal != nil).
		Msg("Payment recorded")

	result := &PaymentResult{Payment: payment, Student: student}
	if req.SendReceipt {
		result.Notification = s.notifications.SendPaymentReceipt(ctx, student, payment)
	}
	return result, nil
}

// GetByID retrieves one payment.
func (s *PaymentService) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// ListByStudent returns a student's payment history, newest first.
func (s *PaymentService) ListByStudent(ctx context.Context, studentID string) ([]model.Payment, error) {
	payments, err := s.paymentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return payments, nil
}

package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/notifier"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NotificationService fans messages out to the configured channels and
// queues every attempt for the audit log. Delivery failures are reported
// to the operator but never abort the operation that triggered them.
type NotificationService struct {
	cfg         *config.Config
	studentRepo *repository.StudentRepository
	paymentRepo *repository.PaymentRepository
	logRepo     *repository.NotificationLogRepository
	whatsapp    notifier.Notifier
	email       notifier.Notifier
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(cfg *config.Config, studentRepo *repository.StudentRepository, paymentRepo *repository.PaymentRepository, logRepo *repository.NotificationLogRepository, whatsapp, email notifier.Notifier, rdb *redis.Client, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		cfg:         cfg,
		studentRepo: studentRepo,
		paymentRepo: paymentRepo,
		logRepo:     logRepo,
		whatsapp:    whatsapp,
		email:       email,
		rdb:         rdb,
		log:         log.With().Str("component", "notification_service").Logger(),
	}
}

// SendFeeReminder sends the expiry reminder to a student over WhatsApp.
func (s *NotificationService) SendFeeReminder(ctx context.Context, studentID string, includeQR bool) (*model.NotificationResult, error) {
	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	mobile, err := notifier.NormalizeMobile(student.Mobile, s.cfg.DefaultCountryCode)
	if err != nil {
		return &model.NotificationResult{Sent: false, Message: "Invalid mobile number: " + student.Mobile}, nil
	}

	result, sendErr := s.whatsapp.SendFeeReminder(ctx, notifier.FeeReminder{
		Mobile:      mobile,
		StudentName: student.FullName,
		Plan:        student.ClassPlan,
		ExpiryDate:  student.ExpiryDate,
		IncludeQR:   includeQR,
	})
	s.enqueueLog(ctx, student.StudentID, model.NotifyFeeReminder, result, sendErr)

	if sendErr != nil {
		s.log.Warn().Err(sendErr).Str("student_id", studentID).Msg("Fee reminder failed")
		return &model.NotificationResult{Sent: false, Message: result.Message}, nil
	}
	return &model.NotificationResult{Sent: true, Message: result.Message}, nil
}

// SendPaymentReceipt sends the receipt for a payment over WhatsApp and,
// when the student has an email on file, by mail as well. The combined
// outcome is a single operator-facing message.
func (s *NotificationService) SendPaymentReceipt(ctx context.Context, student *model.Student, payment *model.Payment) *model.NotificationResult {
	receipt := notifier.PaymentReceipt{
		Email:         student.Email,
		StudentID:     student.StudentID,
		StudentName:   student.FullName,
		Instrument:    student.Instrument,
		Amount:        payment.Amount,
		ReceiptNumber: payment.ReceiptNumber,
		Plan:          student.ClassPlan,
		PaymentDate:   payment.PaymentDate,
		PaymentMethod: string(payment.PaymentMethod),
		StartDate:     student.StartDate,
		ExpiryDate:    student.ExpiryDate,
		NextDueDate:   payment.NextDueDate,
	}

	var messages []string
	sentAny := false

	mobile, err := notifier.NormalizeMobile(student.Mobile, s.cfg.DefaultCountryCode)
	if err != nil {
		messages = append(messages, "Invalid mobile number: "+student.Mobile)
	} else {
		receipt.Mobile = mobile
		result, sendErr := s.whatsapp.SendPaymentReceipt(ctx, receipt)
		s.enqueueLog(ctx, student.StudentID, model.NotifyPaymentReceipt, result, sendErr)
		messages = append(messages, result.Message)
		if sendErr == nil {
			sentAny = true
		}
	}

	if student.Email != "" {
		result, sendErr := s.email.SendPaymentReceipt(ctx, receipt)
		s.enqueueLog(ctx, student.StudentID, model.NotifyPaymentReceipt, result, sendErr)
		messages = append(messages, result.Message)
		if sendErr == nil {
			sentAny = true
		}
	}

	return &model.NotificationResult{Sent: sentAny, Message: strings.Join(messages, "; ")}
}

// ResendPaymentReceipt re-sends the receipt for an existing payment.
func (s *NotificationService) ResendPaymentReceipt(ctx context.Context, paymentID int64) (*model.NotificationResult, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByStudentID(ctx, payment.StudentID)
	if err != nil {
		return nil, err
	}
	return s.SendPaymentReceipt(ctx, student, payment), nil
}

// History returns a student's recent notification log entries.
func (s *NotificationService) History(ctx context.Context, studentID string, limit int) ([]model.NotificationLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	logs, err := s.logRepo.ListByStudent(ctx, studentID, limit)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.NotificationLog{}
	}
	return logs, nil
}

// enqueueLog pushes one attempt onto the Redis log queue for the worker.
// Logging is strictly best-effort; a full queue never fails a send.
func (s *NotificationService) enqueueLog(ctx context.Context, studentID string, kind model.NotificationKind, result notifier.Result, sendErr error) {
	status := model.NotificationSent
	if sendErr != nil {
		status = model.NotificationFailed
	}

	entry := model.NotificationLog{
		ID:          uuid.New(),
		StudentID:   studentID,
		Channel:     result.Channel,
		Kind:        kind,
		Destination: result.Destination,
		TemplateID:  result.TemplateID,
		Status:      status,
		Detail:      result.Message,
		SentAt:      dateutil.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.rdb.RPush(ctx, config.CacheKey.NotificationLogQueue(), data).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Notification log enqueue failed")
	}
}

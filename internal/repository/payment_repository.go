package repository

import (
	"context"
	"errors"

	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository handles payment rows and receipt sequencing.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create inserts a payment, generating the next receipt number from the
// highest issued receipt inside the transaction. Receipts stay strictly
// increasing even after a cascade delete removes payment rows. When the
// payment renews a plan, the student row is updated in the same transaction
// with the values the caller resolved — the ledger never infers a renewal
// from the amount. The UNIQUE constraint on receipt_number is the backstop;
// a collision surfaces as ErrDuplicate.
func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment, renewal *model.PlanRenewal, prefix string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lastReceipt string
	var count int
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(receipt_number), ''), COUNT(*) FROM payments`,
	).Scan(&lastReceipt, &count); err != nil {
		return err
	}
	p.ReceiptNumber = model.FormatReceiptNumber(prefix, model.NextReceiptNumber(lastReceipt, prefix, count))

	err = tx.QueryRow(ctx,
		`INSERT INTO payments (student_id, amount, payment_date, receipt_number, payment_method, notes, next_due_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		p.StudentID, p.Amount, p.PaymentDate, p.ReceiptNumber, p.PaymentMethod, p.Notes, p.NextDueDate,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}

	if renewal != nil {
		_, err = tx.Exec(ctx,
			`UPDATE students
			 SET class_plan = $1, total_classes = $2, start_date = $3, expiry_date = $4,
			     classes_completed = 0, updated_at = NOW()
			 WHERE student_id = $5`,
			renewal.ClassPlan, renewal.TotalClasses, renewal.StartDate, renewal.ExpiryDate, p.StudentID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a single payment.
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	p := &model.Payment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, amount, payment_date, receipt_number, payment_method, notes, next_due_date, created_at
		 FROM payments WHERE id = $1`, id,
	).Scan(&p.ID, &p.StudentID, &p.Amount, &p.PaymentDate, &p.ReceiptNumber, &p.PaymentMethod, &p.Notes, &p.NextDueDate, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByStudent retrieves a student's payments, newest first.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, amount, payment_date, receipt_number, payment_method, notes, next_due_date, created_at
		 FROM payments WHERE student_id = $1
		 ORDER BY payment_date DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.PaymentDate, &p.ReceiptNumber, &p.PaymentMethod, &p.Notes, &p.NextDueDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// TotalPaid sums a student's lifetime payments.
func (r *PaymentRepository) TotalPaid(ctx context.Context, studentID string) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE student_id = $1`, studentID).Scan(&total)
	return total, err
}

package repository

import (
	"context"

	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationLogRepository persists the outbound-message audit trail.
type NotificationLogRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationLogRepository creates a new NotificationLogRepository.
func NewNotificationLogRepository(pool *pgxpool.Pool) *NotificationLogRepository {
	return &NotificationLogRepository{pool: pool}
}

// Insert appends one log entry. Failures to log must never surface to
// the operation that sent the message, so callers treat errors as
// log-and-continue. A foreign key violation means the student was deleted
// after the entry was enqueued; it surfaces as ErrNotFound so the worker
// can drop the entry instead of retrying forever.
func (r *NotificationLogRepository) Insert(ctx context.Context, l *model.NotificationLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notification_logs (id, student_id, channel, kind, destination, template_id, status, detail, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.StudentID, l.Channel, l.Kind, l.Destination, l.TemplateID, l.Status, l.Detail, l.SentAt)
	if isForeignKeyViolation(err) {
		return ErrNotFound
	}
	return err
}

// ListByStudent retrieves a student's recent notification history.
func (r *NotificationLogRepository) ListByStudent(ctx context.Context, studentID string, limit int) ([]model.NotificationLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, channel, kind, destination, template_id, status, detail, sent_at
		 FROM notification_logs WHERE student_id = $1
		 ORDER BY sent_at DESC LIMIT $2`,
		studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.NotificationLog
	for rows.Next() {
		var l model.NotificationLog
		if err := rows.Scan(&l.ID, &l.StudentID, &l.Channel, &l.Kind, &l.Destination, &l.TemplateID, &l.Status, &l.Detail, &l.SentAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

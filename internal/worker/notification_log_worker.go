package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// notificationLogStore is the slice of the log repository the worker needs.
type notificationLogStore interface {
	Insert(ctx context.Context, l *model.NotificationLog) error
}

// NotificationLogWorker consumes the notification log queue and persists
// entries to PostgreSQL. Sends enqueue their outcome and move on, so a
// slow insert never sits inside a request. The worker only writes audit
// rows; it never touches ledger state.
type NotificationLogWorker struct {
	logs notificationLogStore
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewNotificationLogWorker creates a new NotificationLogWorker.
func NewNotificationLogWorker(logs notificationLogStore, rdb *redis.Client, log zerolog.Logger) *NotificationLogWorker {
	return &NotificationLogWorker{
		logs: logs,
		rdb:  rdb,
		log:  log.With().Str("component", "notification_log_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *NotificationLogWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *NotificationLogWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.CacheKey.NotificationLogQueue()).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	if err := w.persistEntry(ctx, []byte(result[1])); err != nil {
		w.log.Error().Err(err).Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.CacheKey.NotificationLogQueue(), result[1])
		time.Sleep(5 * time.Second)
	}
}

func (w *NotificationLogWorker) persistEntry(ctx context.Context, raw []byte) error {
	var entry model.NotificationLog
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A malformed entry can never succeed; log and drop it.
		w.log.Error().Err(err).Str("payload", string(raw)).Msg("Unmarshal error, dropping entry")
		return nil
	}
	if err := w.logs.Insert(ctx, &entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The student was deleted between enqueue and persist; the
			// row can never insert, so drop it like malformed JSON.
			w.log.Warn().Str("student_id", entry.StudentID).Msg("Student gone, dropping entry")
			return nil
		}
		return err
	}
	return nil
}

// drain processes all remaining items in the queue before shutdown.
func (w *NotificationLogWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.CacheKey.NotificationLogQueue()).Result()
		if err != nil {
			break
		}
		if err := w.persistEntry(ctx, []byte(result)); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			continue
		}
		drained++
	}
	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained notification log queue")
	}
}

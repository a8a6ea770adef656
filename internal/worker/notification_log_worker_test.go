package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogStore struct {
	err      error
	inserted []model.NotificationLog
}

func (f *fakeLogStore) Insert(_ context.Context, l *model.NotificationLog) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, *l)
	return nil
}

func queuedEntry(t *testing.T) []byte {
	t.Helper()
	entry := model.NotificationLog{
		ID:          uuid.New(),
		StudentID:   "CHORDS001",
		Channel:     model.ChannelWhatsApp,
		Kind:        model.NotifyPaymentReceipt,
		Destination: "919876543210",
		TemplateID:  "4587",
		Status:      model.NotificationSent,
		SentAt:      time.Now(),
	}
	raw, err := json.Marshal(entry)
	require.NoError(t, err)
	return raw
}

func TestPersistEntry(t *testing.T) {
	store := &fakeLogStore{}
	w := NewNotificationLogWorker(store, nil, zerolog.Nop())

	err := w.persistEntry(context.Background(), queuedEntry(t))
	require.NoError(t, err)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "CHORDS001", store.inserted[0].StudentID)
}

func TestPersistEntryDropsMalformed(t *testing.T) {
	store := &fakeLogStore{}
	w := NewNotificationLogWorker(store, nil, zerolog.Nop())

	// A payload that can never unmarshal is dropped, not retried.
	err := w.persistEntry(context.Background(), []byte("not-json"))
	require.NoError(t, err)
	assert.Empty(t, store.inserted)
}

func TestPersistEntryDropsOrphaned(t *testing.T) {
	// The student was deleted after the entry was enqueued. The insert can
	// never succeed, so the entry is dropped instead of looping forever.
	store := &fakeLogStore{err: repository.ErrNotFound}
	w := NewNotificationLogWorker(store, nil, zerolog.Nop())

	err := w.persistEntry(context.Background(), queuedEntry(t))
	assert.NoError(t, err)
}

func TestPersistEntryKeepsTransientFailures(t *testing.T) {
	// Anything else (connection drop, timeout) surfaces so the caller
	// pushes the entry back for retry.
	store := &fakeLogStore{err: errors.New("connection refused")}
	w := NewNotificationLogWorker(store, nil, zerolog.Nop())

	err := w.persistEntry(context.Background(), queuedEntry(t))
	assert.Error(t, err)
}

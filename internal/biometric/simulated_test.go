package biometric

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSimulatedScanner()

	assert.False(t, s.DeviceInfo().Connected)

	require.NoError(t, s.Connect(ctx))
	assert.True(t, s.DeviceInfo().Connected)

	require.NoError(t, s.Disconnect(ctx))
	assert.False(t, s.DeviceInfo().Connected)
}

func TestEnrollRequiresConnection(t *testing.T) {
	s := NewSimulatedScanner()
	_, err := s.Enroll(context.Background(), "CHORDS001")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestEnrollIsDeterministic(t *testing.T) {
	ctx := context.Background()
	s := NewSimulatedScanner()
	require.NoError(t, s.Connect(ctx))

	first, err := s.Enroll(ctx, "CHORDS001")
	require.NoError(t, err)
	second, err := s.Enroll(ctx, "CHORDS001")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, TemplateIDFor("CHORDS001"), first)

	other, err := s.Enroll(ctx, "CHORDS002")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestIdentify(t *testing.T) {
	ctx := context.Background()
	s := NewSimulatedScanner()
	require.NoError(t, s.Connect(ctx))

	// Nothing scanned yet.
	_, err := s.Identify(ctx)
	assert.ErrorIs(t, err, ErrNoMatch)

	s.Touch("CHORDS003")
	got, err := s.Identify(ctx)
	require.NoError(t, err)
	assert.Equal(t, TemplateIDFor("CHORDS003"), got)
}

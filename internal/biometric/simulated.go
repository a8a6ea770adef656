package biometric

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// SimulatedScanner is a software stand-in for the desk scanner. It
// derives template IDs deterministically from the student ID, so dev
// environments and tests behave the same across runs. Identify replays
// the most recent enrollment, which is how the front-desk flow is
// exercised without hardware.
type SimulatedScanner struct {
	mu        sync.Mutex
	connected bool
	lastScan  string
}

// NewSimulatedScanner creates a disconnected simulated device.
func NewSimulatedScanner() *SimulatedScanner {
	return &SimulatedScanner{}
}

// Connect brings the simulated device online.
func (s *SimulatedScanner) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	return nil
}

// Disconnect takes the simulated device offline.
func (s *SimulatedScanner) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

// Enroll captures a finger for studentID and returns its template ID.
func (s *SimulatedScanner) Enroll(ctx context.Context, studentID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return "", ErrNotConnected
	}
	id := TemplateIDFor(studentID)
	s.lastScan = id
	return id, nil
}

// Identify returns the template ID of the last enrolled finger.
func (s *SimulatedScanner) Identify(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return "", ErrNotConnected
	}
	if s.lastScan == "" {
		return "", ErrNoMatch
	}
	return s.lastScan, nil
}

// DeviceInfo describes the simulated device.
func (s *SimulatedScanner) DeviceInfo() DeviceInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DeviceInfo{
		Serial:    "SIM-0001",
		Model:     "Simulated Fingerprint Scanner",
		Connected: s.connected,
	}
}

// Touch primes the simulated device so the next Identify matches
// studentID. Test hook; the real device captures a live finger.
func (s *SimulatedScanner) Touch(studentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastScan = TemplateIDFor(studentID)
}

// TemplateIDFor derives the deterministic template ID the simulated
// device assigns to a student.
func TemplateIDFor(studentID string) string {
	sum := sha256.Sum256([]byte("fp:" + studentID))
	return hex.EncodeToString(sum[:8])
}

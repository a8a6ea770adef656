// Package biometric abstracts the fingerprint scanner used at the
// academy front desk. Hardware vendors differ, so services depend on
// the Scanner interface and the concrete device is chosen at wiring
// time.
package biometric

import (
	"context"
	"errors"
)

// Scanner errors surfaced to services.
var (
	// ErrNotConnected is returned by operations that need a live device.
	ErrNotConnected = errors.New("biometric: scanner not connected")
	// ErrNoMatch is returned by Identify when no enrolled finger matched.
	ErrNoMatch = errors.New("biometric: no matching fingerprint")
)

// DeviceInfo describes the attached scanner.
type DeviceInfo struct {
	Serial    string `json:"serial"`
	Model     string `json:"model"`
	Connected bool   `json:"connected"`
}

// Scanner is a fingerprint device. Enroll captures a finger and returns
// the opaque template ID the device stored it under; Identify captures a
// finger and returns the template ID of the best match.
type Scanner interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Enroll(ctx context.Context, studentID string) (templateID string, err error)
	Identify(ctx context.Context) (templateID string, err error)
	DeviceInfo() DeviceInfo
}

package model

import (
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
)

// NoPackageName is the sentinel plan for students without an active package.
// It is the only plan allowed to have zero classes and zero duration.
const NoPackageName = "No Package"

// Package is a named billing tier: class count, validity duration, price.
// The catalog is effectively static at runtime; students snapshot the class
// count at assignment time so later re-pricing never rewrites history.
type Package struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	TotalClasses int       `json:"total_classes"`
	DurationDays int       `json:"duration_days"`
	Price        float64   `json:"price"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsNoPackage reports whether this is the sentinel plan.
func (p *Package) IsNoPackage() bool {
	return p.Name == NoPackageName
}

// ExpiryFrom derives the expiry date for a package starting on the given
// date. The sentinel plan expires the day it starts.
func (p *Package) ExpiryFrom(start dateutil.Date) dateutil.Date {
	if p.DurationDays == 0 {
		return start
	}
	return dateutil.NewDate(dateutil.AddDays(start.Time, p.DurationDays))
}

// CreatePackageRequest is the payload for adding a billing tier.
type CreatePackageRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=50"`
	TotalClasses int     `json:"total_classes" binding:"min=0"`
	DurationDays int     `json:"duration_days" binding:"min=0"`
	Price        float64 `json:"price" binding:"min=0"`
	Description  string  `json:"description" binding:"max=200"`
}

// Instrument is a catalog entry for the instruments the academy teaches.
type Instrument struct {
	ID       int    `json:"id"`
	Name     string `json:"instrument_name"`
	Emoji    string `json:"emoji"`
	IsActive bool   `json:"is_active"`
}

// CreateInstrumentRequest is the payload for adding an instrument.
type CreateInstrumentRequest struct {
	Name  string `json:"instrument_name" binding:"required,min=2,max=50"`
	Emoji string `json:"emoji" binding:"max=8"`
}

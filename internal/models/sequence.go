package models

import "time"

// NumberSequence is the allocator state for year-scoped human-readable
// identifiers (matter references, invoice numbers). One row per
// (kind, year); LastValue is incremented under a row lock so two callers
// can never observe the same value.
type NumberSequence struct {
	ID        uint   `gorm:"primaryKey"`
	Kind      string `gorm:"size:20;not null;uniqueIndex:idx_sequence_scope"`
	Year      int    `gorm:"not null;uniqueIndex:idx_sequence_scope"`
	LastValue int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

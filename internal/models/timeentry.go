package models

import "time"

// TimeEntry records work performed against a matter. Rate is frozen at
// creation time (zero when non-billable). Once billed the entry belongs to
// exactly one invoice and may no longer be changed or deleted.
type TimeEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MatterID    uint      `gorm:"not null;index" json:"matter_id"`
	Date        time.Time `gorm:"not null;index" json:"-"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Description string    `gorm:"not null" json:"description"`
	Billable    bool      `gorm:"default:true" json:"billable"`
	Rate        float64   `gorm:"not null" json:"rate"`
	Billed      bool      `gorm:"default:false;index" json:"billed"`
	InvoiceID   *uint     `gorm:"index" json:"invoice_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Amount is the billable value of the entry.
func (e *TimeEntry) Amount() float64 {
	if !e.Billable {
		return 0
	}
	return e.Hours * e.Rate
}

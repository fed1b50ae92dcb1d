package models

import "time"

// InvoiceStatus is the billing lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// statusTransitions is the closed set of allowed status changes.
var statusTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:   {InvoiceSent},
	InvoiceSent:    {InvoicePaid, InvoiceOverdue},
	InvoiceOverdue: {InvoicePaid},
}

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// CanTransitionTo reports whether a change from s to next is allowed.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Invoice is a billing artifact over a set of time entries. Totals are
// frozen at creation; the billed flag on member entries prevents
// re-inclusion on a later invoice.
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	InvoiceNumber string        `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	MatterID      uint          `gorm:"not null;index" json:"matter_id"`
	Matter        *Matter       `gorm:"foreignKey:MatterID" json:"-"`
	IssueDate     time.Time     `gorm:"not null" json:"-"`
	DueDate       time.Time     `gorm:"not null" json:"-"`
	Subtotal      float64       `gorm:"not null" json:"subtotal"`
	VATRate       float64       `gorm:"not null;default:0.24" json:"vat_rate"`
	VATAmount     float64       `gorm:"not null" json:"vat_amount"`
	Total         float64       `gorm:"not null" json:"total"`
	Status        InvoiceStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	PaidDate      *time.Time    `json:"-"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`

	TimeEntries []TimeEntry `gorm:"foreignKey:InvoiceID" json:"-"`
}

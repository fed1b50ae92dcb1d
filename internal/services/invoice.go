package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/khlegal/practice-api/internal/models"
)

// InvoiceService owns invoice creation, the only write that touches several
// rows at once, and the invoice status lifecycle.
type InvoiceService struct {
	db  *gorm.DB
	seq *SequenceService

	// DefaultVATRate and DefaultDueDays come from config and apply when the
	// caller does not override them per invoice.
	DefaultVATRate float64
	DefaultDueDays int

	// billing serializes create calls within the process. Postgres callers
	// are additionally serialized per matter by the FOR UPDATE lock below,
	// which also covers multi-process deployments.
	billing sync.Mutex
}

func NewInvoiceService(db *gorm.DB, seq *SequenceService, vatRate float64, dueDays int) *InvoiceService {
	if vatRate == 0 {
		vatRate = 0.24
	}
	if dueDays == 0 {
		dueDays = 14
	}
	return &InvoiceService{db: db, seq: seq, DefaultVATRate: vatRate, DefaultDueDays: dueDays}
}

type CreateInvoiceInput struct {
	MatterID     uint
	TimeEntryIDs []uint
	// DueDays defaults to the service default when 0.
	DueDays int
	// VATRate defaults to the service default when 0.
	VATRate float64
	Notes   string
}

// Create selects the qualifying subset of the given time entries (same
// matter, billable, unbilled), computes subtotal/VAT/total, allocates the
// invoice number, persists the invoice, and marks the entries billed.
// Everything runs in one transaction: either the invoice exists and every
// qualifying entry points at it, or nothing changed. Entries outside the
// qualifying set are silently skipped; over-selection is allowed.
func (s *InvoiceService) Create(ctx context.Context, in CreateInvoiceInput) (*models.Invoice, error) {
	s.billing.Lock()
	defer s.billing.Unlock()

	vatRate := in.VATRate
	if vatRate == 0 {
		vatRate = s.DefaultVATRate
	}
	dueDays := in.DueDays
	if dueDays == 0 {
		dueDays = s.DefaultDueDays
	}

	var invoice models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the matter row so concurrent billing runs against the same
		// matter serialize before reading the unbilled set.
		matterQ := tx.Model(&models.Matter{})
		if tx.Dialector.Name() == "postgres" {
			matterQ = matterQ.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var matter models.Matter
		if err := matterQ.First(&matter, in.MatterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatterNotFound
			}
			return err
		}

		var entries []models.TimeEntry
		if err := tx.Where(
			"id IN ? AND matter_id = ? AND billable = ? AND billed = ?",
			in.TimeEntryIDs, in.MatterID, true, false,
		).Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrNothingBillable
		}

		var subtotal float64
		for _, e := range entries {
			subtotal += e.Hours * e.Rate
		}
		vatAmount := subtotal * vatRate
		total := subtotal + vatAmount

		now := time.Now()
		number, err := s.seq.NextInTx(tx, SequenceInvoice, now.Year())
		if err != nil {
			return err
		}

		invoice = models.Invoice{
			InvoiceNumber: number,
			MatterID:      in.MatterID,
			IssueDate:     now,
			DueDate:       now.AddDate(0, 0, dueDays),
			Subtotal:      subtotal,
			VATRate:       vatRate,
			VATAmount:     vatAmount,
			Total:         total,
			Status:        models.InvoiceDraft,
			Notes:         in.Notes,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		ids := make([]uint, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		return tx.Model(&models.TimeEntry{}).
			Where("id IN ?", ids).
			Updates(map[string]any{"billed": true, "invoice_id": invoice.ID}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, invoice.ID)
}

// Get loads an invoice with its time entries and matter (client included).
func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("TimeEntries").
		Preload("Matter").
		Preload("Matter.Client").
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (s *InvoiceService) List(ctx context.Context, limit, offset int) ([]models.Invoice, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Invoice{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var invoices []models.Invoice
	if err := s.db.WithContext(ctx).
		Order("issue_date desc, id desc").
		Limit(limit).Offset(offset).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// UpdateStatus moves an invoice along draft → sent → paid/overdue. Moving to
// paid stamps the paid date (today when none given).
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uint, next models.InvoiceStatus, paidDate *time.Time) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransitionTo(next) {
		return nil, ErrInvalidStatusChange
	}
	updates := map[string]any{"status": next}
	if next == models.InvoicePaid {
		when := time.Now()
		if paidDate != nil {
			when = *paidDate
		}
		updates["paid_date"] = when
	}
	if err := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

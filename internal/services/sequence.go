package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/khlegal/practice-api/internal/models"
)

// SequenceKind selects an identifier namespace.
type SequenceKind string

const (
	SequenceMatter  SequenceKind = "matter"
	SequenceInvoice SequenceKind = "invoice"
)

func (k SequenceKind) prefix(year int) string {
	if k == SequenceInvoice {
		return fmt.Sprintf("INV-%d-", year)
	}
	return fmt.Sprintf("KH-%d-", year)
}

func (k SequenceKind) width() int {
	if k == SequenceInvoice {
		return 4
	}
	return 3
}

// SequenceService allocates year-scoped sequential identifiers
// (KH-YEAR-NNN for matters, INV-YEAR-NNNN for invoices) from a dedicated
// counter table. The counter row is read FOR UPDATE on postgres so
// concurrent transactions serialize on it; a process-level mutex covers
// sqlite, which has no row locks.
type SequenceService struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewSequenceService(db *gorm.DB) *SequenceService {
	return &SequenceService{db: db}
}

// NextInTx allocates the next identifier inside the caller's transaction.
// The allocation is rolled back with the caller on failure, so numbers are
// only consumed by committed work.
func (s *SequenceService) NextInTx(tx *gorm.DB, kind SequenceKind, year int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := tx.Where("kind = ? AND year = ?", string(kind), year)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var seq models.NumberSequence
	err := q.First(&seq).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// First allocation for this (kind, year). Seed from any identifiers
		// issued before the counter table existed.
		last, scanErr := s.scanLastIssued(tx, kind, year)
		if scanErr != nil {
			return "", scanErr
		}
		seq = models.NumberSequence{Kind: string(kind), Year: year, LastValue: last}
		if err := tx.Create(&seq).Error; err != nil {
			return "", fmt.Errorf("create sequence row: %w", err)
		}
	case err != nil:
		return "", fmt.Errorf("load sequence row: %w", err)
	}

	seq.LastValue++
	if err := tx.Model(&models.NumberSequence{}).
		Where("id = ?", seq.ID).
		Update("last_value", seq.LastValue).Error; err != nil {
		return "", fmt.Errorf("advance sequence: %w", err)
	}
	return fmt.Sprintf("%s%0*d", kind.prefix(year), kind.width(), seq.LastValue), nil
}

// Allocate runs NextInTx in its own transaction, for callers that are not
// already inside one.
func (s *SequenceService) Allocate(ctx context.Context, kind SequenceKind) (string, error) {
	var number string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.NextInTx(tx, kind, time.Now().Year())
		if err != nil {
			return err
		}
		number = n
		return nil
	})
	return number, err
}

// scanLastIssued finds the highest number already issued under the prefix,
// covering databases populated before the counter table was introduced.
func (s *SequenceService) scanLastIssued(tx *gorm.DB, kind SequenceKind, year int) (int64, error) {
	prefix := kind.prefix(year)
	var identifiers []string
	var err error
	if kind == SequenceInvoice {
		err = tx.Model(&models.Invoice{}).
			Where("invoice_number LIKE ?", prefix+"%").
			Pluck("invoice_number", &identifiers).Error
	} else {
		err = tx.Model(&models.Matter{}).
			Where("reference LIKE ?", prefix+"%").
			Pluck("reference", &identifiers).Error
	}
	if err != nil {
		return 0, fmt.Errorf("scan issued identifiers: %w", err)
	}
	var last int64
	for _, id := range identifiers {
		numPart := id[strings.LastIndex(id, "-")+1:]
		n, convErr := strconv.ParseInt(numPart, 10, 64)
		if convErr != nil {
			continue
		}
		if n > last {
			last = n
		}
	}
	return last, nil
}

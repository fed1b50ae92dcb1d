package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/khlegal/practice-api/internal/models"
)

// TimeEntryService owns the time ledger.
type TimeEntryService struct {
	db *gorm.DB
}

func NewTimeEntryService(db *gorm.DB) *TimeEntryService {
	return &TimeEntryService{db: db}
}

type TimeEntryInput struct {
	MatterID    uint
	Date        time.Time
	Hours       float64
	Description string
	Billable    bool
	// Rate overrides the matter's default hourly rate when > 0.
	Rate float64
}

type TimeEntryPatch struct {
	Date        *time.Time
	Hours       *float64
	Description *string
	Billable    *bool
	Rate        *float64
}

type TimeEntryFilter struct {
	MatterID uint
	Limit    int
	Offset   int
}

// Create records work against a matter. The rate is frozen at creation:
// the explicit rate when given, otherwise the matter's default, and always
// zero for non-billable entries.
func (s *TimeEntryService) Create(ctx context.Context, in TimeEntryInput) (*models.TimeEntry, error) {
	var matter models.Matter
	if err := s.db.WithContext(ctx).First(&matter, in.MatterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatterNotFound
		}
		return nil, err
	}

	rate := in.Rate
	if rate == 0 {
		rate = matter.HourlyRate
	}
	if !in.Billable {
		rate = 0
	}

	entry := models.TimeEntry{
		MatterID:    in.MatterID,
		Date:        in.Date,
		Hours:       in.Hours,
		Description: in.Description,
		Billable:    in.Billable,
		Rate:        rate,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *TimeEntryService) Get(ctx context.Context, id uint) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s *TimeEntryService) List(ctx context.Context, f TimeEntryFilter) ([]models.TimeEntry, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.TimeEntry{})
	if f.MatterID != 0 {
		q = q.Where("matter_id = ?", f.MatterID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var entries []models.TimeEntry
	if err := q.Order("date desc").Limit(f.Limit).Offset(f.Offset).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Update patches an unbilled entry. Billed entries are frozen: their amounts
// back an issued invoice.
func (s *TimeEntryService) Update(ctx context.Context, id uint, patch TimeEntryPatch) (*models.TimeEntry, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Billed {
		return nil, ErrEntryBilled
	}
	updates := map[string]any{}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}
	if patch.Hours != nil {
		updates["hours"] = *patch.Hours
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Billable != nil {
		updates["billable"] = *patch.Billable
	}
	if patch.Rate != nil {
		updates["rate"] = *patch.Rate
	}
	// Keep the rate consistent with the billable flag.
	if b, ok := updates["billable"].(bool); ok && !b {
		updates["rate"] = 0.0
	}
	if len(updates) == 0 {
		return entry, nil
	}
	if err := s.db.WithContext(ctx).Model(entry).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes an unbilled entry. Billed entries cannot be deleted.
func (s *TimeEntryService) Delete(ctx context.Context, id uint) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if entry.Billed {
		return ErrEntryBilled
	}
	return s.db.WithContext(ctx).Delete(entry).Error
}

package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/khlegal/practice-api/internal/models"
)

// MatterService owns matter lifecycle and the per-matter aggregation reads.
type MatterService struct {
	db  *gorm.DB
	seq *SequenceService
}

func NewMatterService(db *gorm.DB, seq *SequenceService) *MatterService {
	return &MatterService{db: db, seq: seq}
}

type MatterInput struct {
	Title          string
	Description    string
	ClientID       uint
	Status         models.MatterStatus
	MatterType     models.MatterType
	OpenedDate     *time.Time
	EstimatedValue float64
	HourlyRate     float64
}

type MatterPatch struct {
	Title          *string
	Description    *string
	Status         *models.MatterStatus
	MatterType     *models.MatterType
	EstimatedValue *float64
	HourlyRate     *float64
	ClosedDate     *time.Time
}

// MatterTotals is the recomputed-per-read aggregation over a matter's time
// entries. TotalHours counts every entry; TotalBillable sums hours*rate over
// billable entries whether or not they have been invoiced yet.
type MatterTotals struct {
	TotalHours    float64
	TotalBillable float64
}

type MatterFilter struct {
	Status   models.MatterStatus
	ClientID uint
	Limit    int
	Offset   int
}

// Create allocates the matter reference and persists the matter in one
// transaction, so an aborted insert never consumes a reference.
func (s *MatterService) Create(ctx context.Context, in MatterInput) (*models.Matter, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, in.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	opened := time.Now()
	if in.OpenedDate != nil {
		opened = *in.OpenedDate
	}
	status := in.Status
	if status == "" {
		status = models.MatterActive
	}
	matterType := in.MatterType
	if matterType == "" {
		matterType = models.MatterOther
	}

	var matter models.Matter
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reference, err := s.seq.NextInTx(tx, SequenceMatter, time.Now().Year())
		if err != nil {
			return err
		}
		matter = models.Matter{
			Reference:      reference,
			Title:          in.Title,
			Description:    in.Description,
			ClientID:       in.ClientID,
			Status:         status,
			MatterType:     matterType,
			OpenedDate:     opened,
			EstimatedValue: in.EstimatedValue,
			HourlyRate:     in.HourlyRate,
		}
		return tx.Create(&matter).Error
	})
	if err != nil {
		return nil, err
	}
	matter.Client = &client
	return &matter, nil
}

func (s *MatterService) Get(ctx context.Context, id uint) (*models.Matter, error) {
	var matter models.Matter
	if err := s.db.WithContext(ctx).Preload("Client").First(&matter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatterNotFound
		}
		return nil, err
	}
	return &matter, nil
}

func (s *MatterService) List(ctx context.Context, f MatterFilter) ([]models.Matter, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Matter{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var matters []models.Matter
	if err := q.Preload("Client").Order("opened_date desc").
		Limit(f.Limit).Offset(f.Offset).Find(&matters).Error; err != nil {
		return nil, 0, err
	}
	return matters, total, nil
}

// Update applies a partial patch. The reference is immutable and cannot be
// patched.
func (s *MatterService) Update(ctx context.Context, id uint, patch MatterPatch) (*models.Matter, error) {
	matter, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.MatterType != nil {
		updates["matter_type"] = *patch.MatterType
	}
	if patch.EstimatedValue != nil {
		updates["estimated_value"] = *patch.EstimatedValue
	}
	if patch.HourlyRate != nil {
		updates["hourly_rate"] = *patch.HourlyRate
	}
	if patch.ClosedDate != nil {
		updates["closed_date"] = *patch.ClosedDate
	}
	if len(updates) == 0 {
		return matter, nil
	}
	if err := s.db.WithContext(ctx).Model(matter).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Totals recomputes hour and billable-amount sums for a matter. An empty
// entry set yields zeros.
func (s *MatterService) Totals(ctx context.Context, matterID uint) (MatterTotals, error) {
	var entries []models.TimeEntry
	if err := s.db.WithContext(ctx).
		Where("matter_id = ?", matterID).Find(&entries).Error; err != nil {
		return MatterTotals{}, err
	}
	var t MatterTotals
	for _, e := range entries {
		t.TotalHours += e.Hours
		if e.Billable {
			t.TotalBillable += e.Hours * e.Rate
		}
	}
	return t, nil
}

package models

import "time"

// MatterStatus is the lifecycle state of a matter.
type MatterStatus string

const (
	MatterActive    MatterStatus = "active"
	MatterPending   MatterStatus = "pending"
	MatterCompleted MatterStatus = "completed"
	MatterArchived  MatterStatus = "archived"
)

// Valid reports whether s is a known matter status.
func (s MatterStatus) Valid() bool {
	switch s {
	case MatterActive, MatterPending, MatterCompleted, MatterArchived:
		return true
	}
	return false
}

// MatterType classifies the engagement.
type MatterType string

const (
	MatterLitigation MatterType = "litigation"
	MatterCorporate  MatterType = "corporate"
	MatterPIL        MatterType = "PIL"
	MatterIP         MatterType = "IP"
	MatterEmployment MatterType = "employment"
	MatterOther      MatterType = "other"
)

func (t MatterType) Valid() bool {
	switch t {
	case MatterLitigation, MatterCorporate, MatterPIL, MatterIP, MatterEmployment, MatterOther:
		return true
	}
	return false
}

// Matter is a tracked legal case belonging to a client. Reference is the
// human-readable identifier (KH-YEAR-NNN) and never changes once assigned.
type Matter struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Reference      string       `gorm:"size:50;uniqueIndex;not null" json:"reference"`
	Title          string       `gorm:"size:500;not null" json:"title"`
	Description    string       `json:"description"`
	ClientID       uint         `gorm:"not null;index" json:"client_id"`
	Client         *Client      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Status         MatterStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	MatterType     MatterType   `gorm:"size:20;not null;default:'other'" json:"matter_type"`
	OpenedDate     time.Time    `gorm:"not null" json:"opened_date"`
	ClosedDate     *time.Time   `json:"closed_date"`
	EstimatedValue float64      `gorm:"default:0" json:"estimated_value"`
	HourlyRate     float64      `gorm:"default:250" json:"hourly_rate"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	TimeEntries []TimeEntry `gorm:"foreignKey:MatterID;constraint:OnDelete:CASCADE" json:"-"`
	Documents   []Document  `gorm:"foreignKey:MatterID;constraint:OnDelete:CASCADE" json:"-"`
	Invoices    []Invoice   `gorm:"foreignKey:MatterID;constraint:OnDelete:CASCADE" json:"-"`
}

package models

import "time"

// Client entity
type Client struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:255;not null;index" json:"name"`
	BusinessID    string `gorm:"size:50" json:"business_id"` // Y-tunnus
	Email         string `gorm:"size:255" json:"email"`
	Phone         string `gorm:"size:50" json:"phone"`
	Address       string `json:"address"`
	ContactPerson string `gorm:"size:255" json:"contact_person"`
	Notes         string `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Matters []Matter `gorm:"foreignKey:ClientID" json:"-"`
}

package models

import "time"

// User is an API account. Only authentication is enforced; the admin flag
// is stored for future role checks.
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"size:255;not null" json:"-"`
	FullName       string `gorm:"size:255;not null" json:"full_name"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
	IsAdmin        bool   `gorm:"default:false" json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}

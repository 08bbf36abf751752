package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	TokenVersion int            `gorm:"default:0" json:"-"` // Increment to invalidate all user sessions

	// Relationships
	Todos           []Todo           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RevokedSessions []RevokedSession `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

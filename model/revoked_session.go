package model

import "time"

// RevokedSession records a logged-out session token. Rows are kept until
// the underlying token would have expired anyway, then purged by cron.
type RevokedSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"column:jti;index;not null" json:"jti"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Reason    string    `gorm:"type:varchar(50)" json:"reason"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

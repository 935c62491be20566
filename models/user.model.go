package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	// NextGroupSeq is a monotonic counter for per-account group numbering.
	// Never decremented, so group numbers are not reused after deletions.
	NextGroupSeq uint `gorm:"default:0" json:"-"`
}

// Session is the single active session for an account. Logging in again
// replaces the row, so any token issued earlier stops resolving even while
// it is still cryptographically valid.
type Session struct {
	gorm.Model
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Token     string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

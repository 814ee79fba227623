package models

import "time"

// PasswordResetToken is a persisted, expiring single-use token for the
// password reset flow. Only the SHA-256 hash of the token is stored.
type PasswordResetToken struct {
	Base
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	TokenHash string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

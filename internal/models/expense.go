package models

import "time"

// Expense represents a single expense entry logged by a user.
type Expense struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    Category  `gorm:"size:32;not null;index" json:"category"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	Date        time.Time `gorm:"not null;index" json:"date"`
}

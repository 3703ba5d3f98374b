package models

import "time"

// Expense is a single spend record owned by one user. AmountCents is
// always strictly positive; the date defaults to creation time when
// the client does not supply one.
type Expense struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null;size:200" json:"title"`
	AmountCents int64     `gorm:"type:bigint;not null" json:"amount_cents"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Description string    `json:"description"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

package models

// Category groups a user's expenses. Names are unique per user,
// compared case-insensitively; the composite expression index backs up
// the explicit pre-check in the service layer, so two racing inserts
// of "Food" and "food" cannot both commit.
type Category struct {
	Base
	UserID uint   `gorm:"not null;index;index:idx_categories_user_name,unique" json:"user_id"`
	Name   string `gorm:"not null;size:100;index:idx_categories_user_name,unique,expression:LOWER(name)" json:"name"`

	// Relationships
	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}

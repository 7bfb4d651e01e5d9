package models

import "time"

// Transaction types. The database stores the raw string.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a single financial event belonging to a user.
// CreatedAt is the field period queries filter on.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Type        string    `gorm:"size:16;not null;index" json:"type"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
}

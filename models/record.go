package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyTitle      = errors.New("title required")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrUnknownCategory = errors.New("unknown category")
)

// Category vocabularies are fixed per record kind.
var (
	IncomeCategories  = []string{"Salary", "Freelance", "Investments", "Other"}
	ExpenseCategories = []string{"Food", "Transportation", "Entertainment", "Bills", "Shopping", "Healthcare", "Education", "Other"}
)

// Income is a single income record owned by one user.
// Amount is kept in the smallest currency unit (cents).
type Income struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      uint      `gorm:"index;not null" json:"user"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:64;not null" json:"category"`
	Description string    `gorm:"size:512" json:"description"`
	Date        time.Time `gorm:"index;not null" json:"date"`
}

// Expense has the same shape as Income but a disjoint category set.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      uint      `gorm:"index;not null" json:"user"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:64;not null" json:"category"`
	Description string    `gorm:"size:512" json:"description"`
	Date        time.Time `gorm:"index;not null" json:"date"`
}

func (i Income) Validate() error {
	return validateRecord(i.Title, i.Amount, i.Category, IncomeCategories)
}

func (e Expense) Validate() error {
	return validateRecord(e.Title, e.Amount, e.Category, ExpenseCategories)
}

func validateRecord(title string, amount int64, category string, allowed []string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	for _, c := range allowed {
		if c == category {
			return nil
		}
	}
	return ErrUnknownCategory
}

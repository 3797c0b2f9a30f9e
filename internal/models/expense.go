package models

import "time"

// Expense is a recorded business expense.
type Expense struct {
	ID              string    `json:"id"`
	ShopID          string    `json:"shopId"`
	Category        string    `json:"category"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	ExpenseDate     time.Time `json:"expenseDate"`
	IsRecurring     bool      `json:"isRecurring"`
	RecurringPeriod string    `json:"recurringPeriod,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

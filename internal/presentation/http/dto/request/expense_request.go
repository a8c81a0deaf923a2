package request

import "github.com/shopspring/decimal"

// ExpenseRequest represents an expense create/update request
type ExpenseRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=255"`
	Category *string         `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date" binding:"required"`
	Notes    *string         `json:"notes"`
}

// ExpenseFilterRequest represents expense filter parameters
type ExpenseFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

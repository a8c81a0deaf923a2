package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
)

// DashboardTotals aggregates the headline figures for one business
type DashboardTotals struct {
	SalesTotal    decimal.Decimal `json:"sales_total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Receivables   decimal.Decimal `json:"receivables"`
	PurchaseTotal decimal.Decimal `json:"purchase_total"`
	ExpenseTotal  decimal.Decimal `json:"expense_total"`
	InvoiceCount  int64           `json:"invoice_count"`
	CustomerCount int64           `json:"customer_count"`
	ProductCount  int64           `json:"product_count"`
	LowStockCount int64           `json:"low_stock_count"`
}

// DailySales is one day's invoiced total
type DailySales struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// AnalyticsRepository provides read-only aggregates for the dashboard
type AnalyticsRepository interface {
	// GetDashboardTotals computes headline totals, optionally bounded by date
	GetDashboardTotals(ctx context.Context, from, to *time.Time) (*DashboardTotals, error)
	// GetRecentInvoices retrieves the most recent invoices with their customers
	GetRecentInvoices(ctx context.Context, limit int) ([]entity.Invoice, error)
	// GetDailySales computes per-day invoiced totals for the trailing window
	GetDailySales(ctx context.Context, days int) ([]DailySales, error)
}

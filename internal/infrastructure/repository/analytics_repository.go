package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	domainRepo "github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetDashboardTotals(ctx context.Context, from, to *time.Time) (*domainRepo.DashboardTotals, error) {
	businessID, ok := GetBusinessID(ctx)
	if !ok {
		return nil, apperror.ErrForbidden
	}

	totals := &domainRepo.DashboardTotals{
		SalesTotal:    decimal.Zero,
		AmountPaid:    decimal.Zero,
		Receivables:   decimal.Zero,
		PurchaseTotal: decimal.Zero,
		ExpenseTotal:  decimal.Zero,
	}

	dateFilter := func(query *gorm.DB) *gorm.DB {
		if from != nil {
			query = query.Where("date >= ?", *from)
		}
		if to != nil {
			query = query.Where("date <= ?", *to)
		}
		return query
	}

	var invoiceSums struct {
		Total      decimal.Decimal
		AmountPaid decimal.Decimal
		Count      int64
	}
	err := dateFilter(r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("business_id = ?", businessID)).
		Select("COALESCE(SUM(total), 0) as total, COALESCE(SUM(amount_paid), 0) as amount_paid, COUNT(*) as count").
		Scan(&invoiceSums).Error
	if err != nil {
		return nil, err
	}
	totals.SalesTotal = invoiceSums.Total
	totals.AmountPaid = invoiceSums.AmountPaid
	totals.InvoiceCount = invoiceSums.Count
	totals.Receivables = invoiceSums.Total.Sub(invoiceSums.AmountPaid)
	if totals.Receivables.IsNegative() {
		totals.Receivables = decimal.Zero
	}

	var purchaseTotal decimal.Decimal
	err = dateFilter(r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Where("business_id = ?", businessID)).
		Select("COALESCE(SUM(total), 0)").
		Scan(&purchaseTotal).Error
	if err != nil {
		return nil, err
	}
	totals.PurchaseTotal = purchaseTotal

	var expenseTotal decimal.Decimal
	err = dateFilter(r.db.WithContext(ctx).Model(&entity.Expense{}).
		Where("business_id = ?", businessID)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&expenseTotal).Error
	if err != nil {
		return nil, err
	}
	totals.ExpenseTotal = expenseTotal

	err = r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("business_id = ?", businessID).
		Count(&totals.CustomerCount).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("business_id = ?", businessID).
		Count(&totals.ProductCount).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("business_id = ? AND stock_qty <= low_stock_threshold", businessID).
		Count(&totals.LowStockCount).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *analyticsRepository) GetRecentInvoices(ctx context.Context, limit int) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySales, error) {
	businessID, ok := GetBusinessID(ctx)
	if !ok {
		return nil, apperror.ErrForbidden
	}

	since := time.Now().AddDate(0, 0, -days+1)
	startOfWindow := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())

	var rows []domainRepo.DailySales
	err := r.db.WithContext(ctx).Raw(`
		SELECT date, COALESCE(SUM(total), 0) as total
		FROM invoices
		WHERE business_id = ? AND date >= ? AND deleted_at IS NULL
		GROUP BY date
		ORDER BY date ASC
	`, businessID, startOfWindow).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Fill in days without sales so charts get a continuous series
	byDate := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		byDate[row.Date.Format("2006-01-02")] = row.Total
	}

	results := make([]domainRepo.DailySales, 0, days)
	for i := 0; i < days; i++ {
		day := startOfWindow.AddDate(0, 0, i)
		total, ok := byDate[day.Format("2006-01-02")]
		if !ok {
			total = decimal.Zero
		}
		results = append(results, domainRepo.DailySales{Date: day, Total: total})
	}

	return results, nil
}

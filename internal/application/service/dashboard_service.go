package service

import (
	"context"
	"time"

	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
)

// DashboardService aggregates the headline figures for one business
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
	}
}

// DashboardData is the full dashboard payload
type DashboardData struct {
	Totals         *repository.DashboardTotals `json:"totals"`
	RecentInvoices []entity.Invoice            `json:"recent_invoices"`
	DailySales     []repository.DailySales     `json:"daily_sales"`
	LowStock       []entity.Product            `json:"low_stock"`
}

// GetDashboard assembles totals, recent invoices, the trailing sales series
// and the low-stock list
func (s *DashboardService) GetDashboard(ctx context.Context, from, to *time.Time) (*DashboardData, error) {
	totals, err := s.analyticsRepo.GetDashboardTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	recent, err := s.analyticsRepo.GetRecentInvoices(ctx, 5)
	if err != nil {
		return nil, err
	}

	daily, err := s.analyticsRepo.GetDailySales(ctx, 30)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Totals:         totals,
		RecentInvoices: recent,
		DailySales:     daily,
		LowStock:       lowStock,
	}, nil
}

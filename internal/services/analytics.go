package services

import (
	"context"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

type AnalyticsService struct {
	api *api.Client
}

func NewAnalyticsService(c *api.Client) *AnalyticsService {
	return &AnalyticsService{api: c}
}

func (s *AnalyticsService) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	err := s.api.Get(ctx, "/dashboard/stats", &out)
	return out, err
}

func (s *AnalyticsService) Analytics(ctx context.Context) (models.AnalyticsReport, error) {
	var out models.AnalyticsReport
	err := s.api.Get(ctx, "/dashboard/analytics", &out)
	return out, err
}

func (s *AnalyticsService) SalesReport(ctx context.Context) (models.AnalyticsReport, error) {
	var out models.AnalyticsReport
	err := s.api.Get(ctx, "/reports/sales", &out)
	return out, err
}

func (s *AnalyticsService) InventoryReport(ctx context.Context) (models.AnalyticsReport, error) {
	var out models.AnalyticsReport
	err := s.api.Get(ctx, "/reports/inventory", &out)
	return out, err
}

func (s *AnalyticsService) UsersReport(ctx context.Context) (models.AnalyticsReport, error) {
	var out models.AnalyticsReport
	err := s.api.Get(ctx, "/reports/users", &out)
	return out, err
}

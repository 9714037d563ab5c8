package services

import (
	"context"
	"fmt"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

type OrderService struct {
	api *api.Client
}

func NewOrderService(c *api.Client) *OrderService {
	return &OrderService{api: c}
}

// List returns every order; admin and pharmacist view.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := s.api.Get(ctx, "/orders", &out)
	return out, err
}

// ListForUser returns one user's orders.
func (s *OrderService) ListForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var out []models.Order
	err := s.api.Get(ctx, fmt.Sprintf("/orders/%d", userID), &out)
	return out, err
}

func (s *OrderService) Create(ctx context.Context, input models.CreateOrderInput) (models.Order, error) {
	var out models.Order
	err := s.api.Post(ctx, "/orders", input, &out)
	return out, err
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	payload := map[string]string{"status": status}
	return s.api.Put(ctx, fmt.Sprintf("/orders/%d/status", id), payload, nil)
}

func (s *OrderService) Cancel(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/orders/%d", id), nil)
}

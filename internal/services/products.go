// Package services contains the typed wrappers over the backend's REST
// surface, one file per resource. Each method is a single call on the
// generic API client; no business logic lives here.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

type ProductService struct {
	api *api.Client
}

func NewProductService(c *api.Client) *ProductService {
	return &ProductService{api: c}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := s.api.Get(ctx, "/products", &out)
	return out, err
}

func (s *ProductService) Get(ctx context.Context, id int64) (models.Product, error) {
	var out models.Product
	err := s.api.Get(ctx, fmt.Sprintf("/products/%d", id), &out)
	return out, err
}

func (s *ProductService) Create(ctx context.Context, p models.Product) (models.Product, error) {
	var out models.Product
	err := s.api.Post(ctx, "/products", p, &out)
	return out, err
}

func (s *ProductService) Update(ctx context.Context, id int64, p models.Product) (models.Product, error) {
	var out models.Product
	err := s.api.Put(ctx, fmt.Sprintf("/products/%d", id), p, &out)
	return out, err
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/products/%d", id), nil)
}

func (s *ProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	var out []models.Product
	err := s.api.Get(ctx, "/search?query="+url.QueryEscape(query), &out)
	return out, err
}

// LowStock lists products at or below their reorder level.
func (s *ProductService) LowStock(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := s.api.Get(ctx, "/inventory/stock-levels", &out)
	return out, err
}

func (s *ProductService) UpdateStock(ctx context.Context, update models.StockUpdate) error {
	return s.api.Post(ctx, "/inventory/update-stock", update, nil)
}

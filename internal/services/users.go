package services

import (
	"context"
	"fmt"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

// UserService is the admin-only user management surface.
type UserService struct {
	api *api.Client
}

func NewUserService(c *api.Client) *UserService {
	return &UserService{api: c}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.api.Get(ctx, "/users", &out)
	return out, err
}

func (s *UserService) UpdateRole(ctx context.Context, userID int64, role string) error {
	payload := map[string]string{"role": role}
	return s.api.Put(ctx, fmt.Sprintf("/users/%d/role", userID), payload, nil)
}

func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/users/%d", userID), nil)
}

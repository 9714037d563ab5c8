package services

import (
	"context"
	"fmt"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

type NotificationService struct {
	api *api.Client
}

func NewNotificationService(c *api.Client) *NotificationService {
	return &NotificationService{api: c}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	var out []models.Notification
	err := s.api.Get(ctx, fmt.Sprintf("/notifications/%d", userID), &out)
	return out, err
}

func (s *NotificationService) UnreadForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	var out []models.Notification
	err := s.api.Get(ctx, fmt.Sprintf("/notifications/%d/unread", userID), &out)
	return out, err
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID int64) error {
	return s.api.Put(ctx, fmt.Sprintf("/notifications/%d/read", notificationID), nil, nil)
}

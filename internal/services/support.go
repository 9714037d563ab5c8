package services

import (
	"context"
	"fmt"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

type SupportService struct {
	api *api.Client
}

func NewSupportService(c *api.Client) *SupportService {
	return &SupportService{api: c}
}

// ListAll returns every ticket; staff view.
func (s *SupportService) ListAll(ctx context.Context) ([]models.SupportTicket, error) {
	var out []models.SupportTicket
	err := s.api.Get(ctx, "/support/tickets/all", &out)
	return out, err
}

// ListMine returns the calling user's tickets.
func (s *SupportService) ListMine(ctx context.Context) ([]models.SupportTicket, error) {
	var out []models.SupportTicket
	err := s.api.Get(ctx, "/support/tickets", &out)
	return out, err
}

func (s *SupportService) Get(ctx context.Context, id int64) (models.SupportTicket, error) {
	var out models.SupportTicket
	err := s.api.Get(ctx, fmt.Sprintf("/support/ticket/%d", id), &out)
	return out, err
}

func (s *SupportService) Create(ctx context.Context, input models.CreateTicketInput) (models.SupportTicket, error) {
	var out models.SupportTicket
	err := s.api.Post(ctx, "/support/ticket", input, &out)
	return out, err
}

func (s *SupportService) UpdateStatus(ctx context.Context, id int64, status string) error {
	payload := map[string]string{"status": status}
	return s.api.Put(ctx, fmt.Sprintf("/support/ticket/%d/status", id), payload, nil)
}

func (s *SupportService) Respond(ctx context.Context, id int64, response string) error {
	payload := map[string]string{"response": response}
	return s.api.Post(ctx, fmt.Sprintf("/support/ticket/%d/response", id), payload, nil)
}

package services

import (
	"context"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

// PaymentService drives the simulated card processor. No real card ever
// gets charged; the backend fakes the processing states.
type PaymentService struct {
	api *api.Client
}

func NewPaymentService(c *api.Client) *PaymentService {
	return &PaymentService{api: c}
}

func (s *PaymentService) Initiate(ctx context.Context, input models.InitiatePaymentInput) (models.Payment, error) {
	var out models.Payment
	err := s.api.Post(ctx, "/payments/initiate", input, &out)
	return out, err
}

func (s *PaymentService) Verify(ctx context.Context, input models.VerifyPaymentInput) error {
	return s.api.Post(ctx, "/payments/verify", input, nil)
}

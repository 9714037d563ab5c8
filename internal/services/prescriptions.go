package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

type PrescriptionService struct {
	api *api.Client
}

func NewPrescriptionService(c *api.Client) *PrescriptionService {
	return &PrescriptionService{api: c}
}

func (s *PrescriptionService) List(ctx context.Context) ([]models.Prescription, error) {
	var out []models.Prescription
	err := s.api.Get(ctx, "/prescriptions", &out)
	return out, err
}

func (s *PrescriptionService) ListForUser(ctx context.Context, userID int64) ([]models.Prescription, error) {
	var out []models.Prescription
	err := s.api.Get(ctx, fmt.Sprintf("/prescriptions/user/%d", userID), &out)
	return out, err
}

func (s *PrescriptionService) Pending(ctx context.Context) ([]models.Prescription, error) {
	var out []models.Prescription
	err := s.api.Get(ctx, "/prescriptions/pending", &out)
	return out, err
}

// Upload registers a prescription. The backend takes the metadata as query
// parameters, not a JSON body.
func (s *PrescriptionService) Upload(ctx context.Context, input models.PrescriptionUpload) (models.Prescription, error) {
	params := url.Values{}
	params.Set("userId", strconv.FormatInt(input.UserID, 10))
	params.Set("fileName", input.FileName)
	params.Set("fileType", input.FileType)
	params.Set("doctorName", input.DoctorName)
	if input.Notes != "" {
		params.Set("notes", input.Notes)
	}

	var out models.Prescription
	err := s.api.Post(ctx, "/prescriptions/upload?"+params.Encode(), nil, &out)
	return out, err
}

func (s *PrescriptionService) Approve(ctx context.Context, id int64) error {
	return s.api.Put(ctx, fmt.Sprintf("/prescriptions/%d/approve", id), nil, nil)
}

func (s *PrescriptionService) Reject(ctx context.Context, id int64, reason string) error {
	payload := map[string]string{"reason": reason}
	return s.api.Put(ctx, fmt.Sprintf("/prescriptions/%d/reject", id), payload, nil)
}

package models

import "time"

const (
	PrescriptionPending  = "PENDING"
	PrescriptionApproved = "APPROVED"
	PrescriptionRejected = "REJECTED"
)

type Prescription struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId,omitempty"`
	FileName        string     `json:"fileName"`
	FileType        string     `json:"fileType"`
	FilePath        string     `json:"filePath,omitempty"`
	Status          string     `json:"status"`
	DoctorName      string     `json:"doctorName"`
	Notes           string     `json:"notes,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	UploadedAt      time.Time  `json:"uploadedAt"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
}

// PrescriptionUpload mirrors the query parameters of /prescriptions/upload.
type PrescriptionUpload struct {
	UserID     int64
	FileName   string
	FileType   string
	DoctorName string
	Notes      string
}

package models

import "time"

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId,omitempty"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

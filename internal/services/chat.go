package services

import (
	"context"
	"fmt"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

type ChatService struct {
	api *api.Client
}

func NewChatService(c *api.Client) *ChatService {
	return &ChatService{api: c}
}

// Pharmacist returns an on-duty pharmacist for a customer to talk to.
func (s *ChatService) Pharmacist(ctx context.Context) (models.User, error) {
	var out models.User
	err := s.api.Get(ctx, "/chat/pharmacist", &out)
	return out, err
}

// Conversation returns the message history with the given partner.
func (s *ChatService) Conversation(ctx context.Context, partnerID int64) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	err := s.api.Get(ctx, fmt.Sprintf("/chat/conversation/%d", partnerID), &out)
	return out, err
}

func (s *ChatService) Send(ctx context.Context, receiverID int64, message string) (models.ChatMessage, error) {
	payload := map[string]any{"receiverId": receiverID, "message": message}
	var out models.ChatMessage
	err := s.api.Post(ctx, "/chat/send", payload, &out)
	return out, err
}

// Conversations lists the partners the caller has history with; staff view.
func (s *ChatService) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var out []models.Conversation
	err := s.api.Get(ctx, "/chat/conversations", &out)
	return out, err
}

func (s *ChatService) MarkRead(ctx context.Context, messageID int64) error {
	return s.api.Put(ctx, fmt.Sprintf("/chat/read/%d", messageID), nil, nil)
}

package models

import "time"

type ChatMessage struct {
	ID           int64     `json:"id"`
	SenderID     int64     `json:"senderId"`
	SenderName   string    `json:"senderName,omitempty"`
	ReceiverID   int64     `json:"receiverId"`
	ReceiverName string    `json:"receiverName,omitempty"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Conversation is one entry of /chat/conversations: the partner plus a
// preview of the latest exchange.
type Conversation struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	Role        string `json:"role,omitempty"`
	LastMessage string `json:"lastMessage,omitempty"`
	UnreadCount int    `json:"unreadCount,omitempty"`
}

package models

import "time"

// Order lifecycle as the backend enumerates it.
const (
	OrderPending    = "PENDING"
	OrderConfirmed  = "CONFIRMED"
	OrderProcessing = "PROCESSING"
	OrderShipped    = "SHIPPED"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCash = "CASH"
	PaymentMethodCard = "CARD"
)

type OrderItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"userId,omitempty"`
	Items           []OrderItem `json:"items"`
	Status          string      `json:"status"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CreateOrderInput is the POST /orders payload.
type CreateOrderInput struct {
	UserID          int64       `json:"userId"`
	Items           []OrderItem `json:"items"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
}

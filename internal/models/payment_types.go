package models

import "time"

const (
	PaymentPending    = "PENDING"
	PaymentProcessing = "PROCESSING"
	PaymentCompleted  = "COMPLETED"
	PaymentFailed     = "FAILED"
	PaymentRefunded   = "REFUNDED"
)

type Payment struct {
	ID                 int64     `json:"id"`
	OrderID            int64     `json:"orderId,omitempty"`
	UserID             int64     `json:"userId,omitempty"`
	Amount             float64   `json:"amount"`
	PaymentMethod      string    `json:"paymentMethod,omitempty"`
	Status             string    `json:"status"`
	TransactionID      string    `json:"transactionId,omitempty"`
	CardLastFourDigits string    `json:"cardLastFourDigits,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// InitiatePaymentInput is the POST /payments/initiate payload. The card
// fields never touch durable storage; this is a simulated processor.
type InitiatePaymentInput struct {
	OrderID        int64  `json:"orderId"`
	UserID         int64  `json:"userId"`
	CardNumber     string `json:"cardNumber"`
	CardHolderName string `json:"cardHolderName"`
	ExpiryMonth    string `json:"expiryMonth"`
	ExpiryYear     string `json:"expiryYear"`
	CVV            string `json:"cvv"`
}

// VerifyPaymentInput is the POST /payments/verify payload.
type VerifyPaymentInput struct {
	PaymentID     int64  `json:"paymentId"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

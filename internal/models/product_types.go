package models

type Product struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description,omitempty"`
	Price                float64 `json:"price"`
	Category             string  `json:"category,omitempty"`
	Brand                string  `json:"brand,omitempty"`
	ImageURL             string  `json:"imageUrl,omitempty"`
	PrescriptionRequired bool    `json:"prescriptionRequired"`
	StockQuantity        int     `json:"stockQuantity"`
	ReorderLevel         int     `json:"reorderLevel,omitempty"`
}

// StockUpdate is the payload for /inventory/update-stock.
type StockUpdate struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

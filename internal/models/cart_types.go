package models

// CartLine is one product in the cart. The display fields are copied off
// the product when it is added, so the cart renders without refetching.
type CartLine struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Quantity  int     `json:"quantity"`
}

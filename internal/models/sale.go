package models

import "time"

// PaymentMethod enumerates how a sale was paid.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
	PaymentCredit PaymentMethod = "credit"
)

// Sale is a completed sale. Items are persisted in their own table but
// travel inside the sale's outbox snapshot, so the remote side always
// receives a sale together with its line items.
type Sale struct {
	ID            string        `json:"id"`
	ShopID        string        `json:"shopId"`
	CustomerID    string        `json:"customerId,omitempty"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes,omitempty"`
	SaleDate      time.Time     `json:"saleDate"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Items         []SaleItem    `json:"items,omitempty"`
}

// SaleItem is a single line of a sale.
type SaleItem struct {
	ID        string    `json:"id"`
	SaleID    string    `json:"saleId"`
	ProductID string    `json:"productId"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

package models

import "time"

// Product is an inventory item.
type Product struct {
	ID           string    `json:"id"`
	ShopID       string    `json:"shopId"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	SKU          string    `json:"sku,omitempty"`
	Barcode      string    `json:"barcode,omitempty"`
	BuyingPrice  float64   `json:"buyingPrice"`
	SellingPrice float64   `json:"sellingPrice"`
	Stock        float64   `json:"stock"`
	MinStock     float64   `json:"minStock"`
	Unit         string    `json:"unit"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

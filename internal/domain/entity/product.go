package entity

import "github.com/shopspring/decimal"

// Product representa un producto del inventario tal como lo expone el backend.
// Los nombres JSON son el contrato de wire del API (camelCase).
type Product struct {
	ID            int             `json:"id"`
	ProductID     int             `json:"productId,omitempty"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    int             `json:"categoryId"`
	SupplierID    int             `json:"supplierId,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Category      *Category       `json:"category,omitempty"`
	Supplier      *Supplier       `json:"supplier,omitempty"`
}

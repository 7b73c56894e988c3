package entity

import "github.com/shopspring/decimal"

// Tipos de transacción reconocidos por el backend.
const (
	TransactionPurchase = "PURCHASE"
	TransactionSale     = "SALE"
	TransactionReturn   = "RETURN"
)

// Transaction representa un movimiento de inventario (compra, venta o devolución).
// Los campos productId/quantity/transactionDate son legado del API v1 y pueden
// venir vacíos en respuestas nuevas.
type Transaction struct {
	ID              int             `json:"id"`
	TotalProducts   int             `json:"totalProducts"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	TransactionType string          `json:"transactionType"` // PURCHASE | SALE | RETURN
	Status          string          `json:"status"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`

	ProductID       int      `json:"productId,omitempty"`
	Quantity        int      `json:"quantity,omitempty"`
	TransactionDate string   `json:"transactionDate,omitempty"`
	Product         *Product `json:"product,omitempty"`
}

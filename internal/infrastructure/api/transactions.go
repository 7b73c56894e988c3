package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// TransactionRequest cuerpo de creación de compra, venta o devolución.
// SupplierID solo aplica a compras y devoluciones.
type TransactionRequest struct {
	ProductID   int    `json:"productId"`
	Quantity    int    `json:"quantity"`
	SupplierID  *int   `json:"supplierId,omitempty"`
	Description string `json:"description,omitempty"`
}

// GetAllTransactions lista transacciones paginadas con búsqueda libre
// opcional. El texto de búsqueda se normaliza sin tildes antes de enviarse,
// porque el índice del backend está plegado a ASCII.
func (c *Client) GetAllTransactions(ctx context.Context, page, size int, searchText string) (*Result[[]entity.Transaction], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if searchText != "" {
		params.Set("searchText", foldSearchText(searchText))
	}
	return do[[]entity.Transaction](ctx, c, http.MethodGet, "/transactions/all?"+params.Encode(), nil)
}

// GetTransactionsByMonthYear lista las transacciones de un mes concreto.
func (c *Client) GetTransactionsByMonthYear(ctx context.Context, month, year int) (*Result[[]entity.Transaction], error) {
	path := fmt.Sprintf("/transactions/by-month-year?month=%d&year=%d", month, year)
	return do[[]entity.Transaction](ctx, c, http.MethodGet, path, nil)
}

// GetTransactionByID obtiene una transacción por id.
func (c *Client) GetTransactionByID(ctx context.Context, id int) (*Result[entity.Transaction], error) {
	return do[entity.Transaction](ctx, c, http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil)
}

// CreatePurchaseTransaction registra una compra a proveedor.
func (c *Client) CreatePurchaseTransaction(ctx context.Context, tx TransactionRequest) (*Result[entity.Transaction], error) {
	return do[entity.Transaction](ctx, c, http.MethodPost, "/transactions/purchase", tx)
}

// CreateSaleTransaction registra una venta.
func (c *Client) CreateSaleTransaction(ctx context.Context, tx TransactionRequest) (*Result[entity.Transaction], error) {
	return do[entity.Transaction](ctx, c, http.MethodPost, "/transactions/sell", tx)
}

// CreateReturnTransaction registra una devolución a proveedor.
func (c *Client) CreateReturnTransaction(ctx context.Context, tx TransactionRequest) (*Result[entity.Transaction], error) {
	return do[entity.Transaction](ctx, c, http.MethodPost, "/transactions/return", tx)
}

// foldSearchText elimina las marcas diacríticas ("café" -> "cafe").
func foldSearchText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// SupplierRequest cuerpo de alta/edición de proveedor.
type SupplierRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// GetAllSuppliers lista todos los proveedores.
func (c *Client) GetAllSuppliers(ctx context.Context) (*Result[[]entity.Supplier], error) {
	return do[[]entity.Supplier](ctx, c, http.MethodGet, "/suppliers/all", nil)
}

// GetSupplierByID obtiene un proveedor por id.
func (c *Client) GetSupplierByID(ctx context.Context, id int) (*Result[entity.Supplier], error) {
	return do[entity.Supplier](ctx, c, http.MethodGet, fmt.Sprintf("/suppliers/%d", id), nil)
}

// CreateSupplier da de alta un proveedor.
func (c *Client) CreateSupplier(ctx context.Context, supplier SupplierRequest) (*Result[entity.Supplier], error) {
	return do[entity.Supplier](ctx, c, http.MethodPost, "/suppliers/add", supplier)
}

// UpdateSupplier edita el proveedor id.
func (c *Client) UpdateSupplier(ctx context.Context, id int, supplier SupplierRequest) (*Result[entity.Supplier], error) {
	return do[entity.Supplier](ctx, c, http.MethodPut, fmt.Sprintf("/suppliers/update/%d", id), supplier)
}

// DeleteSupplier elimina el proveedor id.
func (c *Client) DeleteSupplier(ctx context.Context, id int) (*Result[struct{}], error) {
	return do[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/suppliers/delete/%d", id), nil)
}

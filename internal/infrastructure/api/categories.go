package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// CategoryRequest cuerpo de alta/edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GetAllCategories lista todas las categorías.
func (c *Client) GetAllCategories(ctx context.Context) (*Result[[]entity.Category], error) {
	return do[[]entity.Category](ctx, c, http.MethodGet, "/categories/all", nil)
}

// GetCategoryByID obtiene una categoría por id.
func (c *Client) GetCategoryByID(ctx context.Context, id int) (*Result[entity.Category], error) {
	return do[entity.Category](ctx, c, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil)
}

// CreateCategory da de alta una categoría.
func (c *Client) CreateCategory(ctx context.Context, category CategoryRequest) (*Result[entity.Category], error) {
	return do[entity.Category](ctx, c, http.MethodPost, "/categories/add", category)
}

// UpdateCategory edita la categoría id.
func (c *Client) UpdateCategory(ctx context.Context, id int, category CategoryRequest) (*Result[entity.Category], error) {
	return do[entity.Category](ctx, c, http.MethodPut, fmt.Sprintf("/categories/update/%d", id), category)
}

// DeleteCategory elimina la categoría id.
func (c *Client) DeleteCategory(ctx context.Context, id int) (*Result[struct{}], error) {
	return do[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/categories/delete/%d", id), nil)
}

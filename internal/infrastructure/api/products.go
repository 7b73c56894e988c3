package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// ImageFile imagen de producto para subir en el formulario multipart.
type ImageFile struct {
	Name    string // nombre de archivo, ej. producto.png
	Content []byte
}

// ProductForm campos del formulario multipart de alta/edición de producto.
// ProductID solo se envía en la edición.
type ProductForm struct {
	ProductID     *int
	Name          string
	SKU           string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    int
	Image         *ImageFile // opcional
}

// GetAllProducts lista todos los productos.
func (c *Client) GetAllProducts(ctx context.Context) (*Result[[]entity.Product], error) {
	return do[[]entity.Product](ctx, c, http.MethodGet, "/products/all", nil)
}

// GetProductByID obtiene un producto por id.
func (c *Client) GetProductByID(ctx context.Context, id int) (*Result[entity.Product], error) {
	return do[entity.Product](ctx, c, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
}

// CreateProduct da de alta un producto (multipart, imagen opcional).
func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (*Result[entity.Product], error) {
	return doMultipart[entity.Product](ctx, c, http.MethodPost, "/products/add", form)
}

// UpdateProduct edita un producto existente (multipart; form.ProductID requerido).
func (c *Client) UpdateProduct(ctx context.Context, form ProductForm) (*Result[entity.Product], error) {
	if form.ProductID == nil {
		return nil, fmt.Errorf("api: actualizar producto requiere productId")
	}
	return doMultipart[entity.Product](ctx, c, http.MethodPut, "/products/update", form)
}

// DeleteProduct elimina un producto por id.
func (c *Client) DeleteProduct(ctx context.Context, id int) (*Result[struct{}], error) {
	return do[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/products/delete/%d", id), nil)
}

// doMultipart codifica el formulario de producto y despacha con la misma
// semántica de fallo que do.
func doMultipart[T any](ctx context.Context, c *Client, method, path string, form ProductForm) (*Result[T], error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":          form.Name,
		"sku":           form.SKU,
		"description":   form.Description,
		"price":         form.Price.String(),
		"stockQuantity": strconv.Itoa(form.StockQuantity),
		"categoryId":    strconv.Itoa(form.CategoryID),
	}
	if form.ProductID != nil {
		fields["productId"] = strconv.Itoa(*form.ProductID)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("api: campo multipart %s: %w", name, err)
		}
	}
	if form.Image != nil {
		part, err := w.CreateFormFile("imageFile", form.Image.Name)
		if err != nil {
			return nil, fmt.Errorf("api: adjuntar imagen: %w", err)
		}
		if _, err := part.Write(form.Image.Content); err != nil {
			return nil, fmt.Errorf("api: escribir imagen: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("api: cerrar formulario multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("api: crear petición %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return dispatch[T](c, req)
}

// Package cart implementa la agregación del carrito de compra/venta como
// servicio de dominio puro: cada operación recibe la lista de líneas y
// devuelve una lista nueva, sin mutar la entrada.
package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Item una línea del carrito: producto, cantidad acumulada y precio unitario.
type Item struct {
	Product   entity.Product
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total importe de la línea (cantidad * precio unitario).
func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Add añade qty unidades del producto al carrito. Si el producto ya tiene
// línea se fusiona sumando cantidades (el precio unitario de la línea
// existente se conserva). Con checkStock en true valida que la cantidad
// acumulada no supere el stock disponible del producto.
func Add(items []Item, p entity.Product, qty int, unitPrice decimal.Decimal, checkStock bool) ([]Item, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: cantidad %d", domain.ErrInvalidInput, qty)
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: precio unitario %s", domain.ErrInvalidInput, unitPrice)
	}

	accumulated := qty
	for _, it := range items {
		if it.Product.ID == p.ID {
			accumulated += it.Quantity
		}
	}
	if checkStock && accumulated > p.StockQuantity {
		return nil, fmt.Errorf("%w: disponible %d, solicitado %d",
			domain.ErrStockInsuficiente, p.StockQuantity, accumulated)
	}

	out := make([]Item, 0, len(items)+1)
	merged := false
	for _, it := range items {
		if it.Product.ID == p.ID {
			it.Quantity += qty
			merged = true
		}
		out = append(out, it)
	}
	if !merged {
		out = append(out, Item{Product: p, Quantity: qty, UnitPrice: unitPrice})
	}
	return out, nil
}

// UpdateQuantity fija la cantidad de la línea del producto. Una cantidad
// menor o igual a cero elimina la línea.
func UpdateQuantity(items []Item, productID, qty int) []Item {
	if qty <= 0 {
		return Remove(items, productID)
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Product.ID == productID {
			it.Quantity = qty
		}
		out = append(out, it)
	}
	return out
}

// Remove elimina la línea del producto, si existe.
func Remove(items []Item, productID int) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Product.ID != productID {
			out = append(out, it)
		}
	}
	return out
}

// TotalAmount importe total del carrito.
func TotalAmount(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total())
	}
	return total
}

// TotalUnits unidades totales del carrito.
func TotalUnits(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

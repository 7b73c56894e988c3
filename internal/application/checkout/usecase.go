// Package checkout envía el carrito al backend: una transacción por línea,
// en paralelo, y agrega los fallos parciales. No hay rollback ni reintento:
// el backend no ofrece atomicidad entre transacciones independientes, así
// que el resultado se reporta como cuenta de fallos con sus mensajes.
package checkout

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Inventario-console/internal/domain/cart"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/api"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Gateway operaciones de transacciones del cliente del API.
type Gateway interface {
	CreatePurchaseTransaction(ctx context.Context, tx api.TransactionRequest) (*api.Result[entity.Transaction], error)
	CreateSaleTransaction(ctx context.Context, tx api.TransactionRequest) (*api.Result[entity.Transaction], error)
	CreateReturnTransaction(ctx context.Context, tx api.TransactionRequest) (*api.Result[entity.Transaction], error)
}

// Failure fallo de una línea concreta del carrito.
type Failure struct {
	ProductID  int
	Message    string
	StatusCode int
}

// Summary resultado agregado del envío del carrito.
type Summary struct {
	Submitted int // líneas enviadas
	Succeeded int
	Failures  []Failure
}

// AllOK indica si todas las líneas se registraron.
func (s *Summary) AllOK() bool { return len(s.Failures) == 0 }

// String resumen legible para la consola, ej. "3 de 3 transacciones creadas".
func (s *Summary) String() string {
	if s.AllOK() {
		return fmt.Sprintf("%d de %d transacciones creadas", s.Succeeded, s.Submitted)
	}
	return fmt.Sprintf("fallaron %d de %d transacciones", len(s.Failures), s.Submitted)
}

// UseCase envío del carrito de compra/venta/devolución.
type UseCase struct {
	gateway Gateway
	log     *logger.Logger
}

// New construye el caso de uso.
func New(gateway Gateway, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{gateway: gateway, log: log}
}

// SubmitPurchase registra una compra por cada línea del carrito.
func (uc *UseCase) SubmitPurchase(ctx context.Context, supplierID int, description string, items []cart.Item) (*Summary, error) {
	if supplierID <= 0 {
		return nil, fmt.Errorf("checkout: compra requiere proveedor")
	}
	return uc.fanOut(ctx, items, func(ctx context.Context, it cart.Item) (*api.Result[entity.Transaction], error) {
		desc := description
		if desc == "" {
			desc = fmt.Sprintf("Purchase of %s from supplier", it.Product.Name)
		}
		return uc.gateway.CreatePurchaseTransaction(ctx, api.TransactionRequest{
			ProductID:   it.Product.ID,
			Quantity:    it.Quantity,
			SupplierID:  &supplierID,
			Description: desc,
		})
	})
}

// SubmitSale registra una venta por cada línea del carrito.
func (uc *UseCase) SubmitSale(ctx context.Context, description string, items []cart.Item) (*Summary, error) {
	return uc.fanOut(ctx, items, func(ctx context.Context, it cart.Item) (*api.Result[entity.Transaction], error) {
		desc := description
		if desc == "" {
			desc = fmt.Sprintf("Sale of %s", it.Product.Name)
		}
		return uc.gateway.CreateSaleTransaction(ctx, api.TransactionRequest{
			ProductID:   it.Product.ID,
			Quantity:    it.Quantity,
			Description: desc,
		})
	})
}

// SubmitReturn registra una devolución por cada línea del carrito.
func (uc *UseCase) SubmitReturn(ctx context.Context, supplierID int, description string, items []cart.Item) (*Summary, error) {
	return uc.fanOut(ctx, items, func(ctx context.Context, it cart.Item) (*api.Result[entity.Transaction], error) {
		var supplier *int
		if supplierID > 0 {
			supplier = &supplierID
		}
		desc := description
		if desc == "" {
			desc = fmt.Sprintf("Return of %s", it.Product.Name)
		}
		return uc.gateway.CreateReturnTransaction(ctx, api.TransactionRequest{
			ProductID:   it.Product.ID,
			Quantity:    it.Quantity,
			SupplierID:  supplier,
			Description: desc,
		})
	})
}

type submitFn func(ctx context.Context, it cart.Item) (*api.Result[entity.Transaction], error)

// fanOut lanza una goroutine por línea y reúne los resultados. No hay
// garantía de orden entre llamadas independientes; los fallos se ordenan por
// producto solo para que el reporte sea estable.
func (uc *UseCase) fanOut(ctx context.Context, items []cart.Item, submit submitFn) (*Summary, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("checkout: carrito vacío")
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		summary  = &Summary{Submitted: len(items)}
		firstErr error
	)
	for _, it := range items {
		wg.Add(1)
		go func(it cart.Item) {
			defer wg.Done()
			res, err := submit(ctx, it)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			if res.Success {
				summary.Succeeded++
				return
			}
			summary.Failures = append(summary.Failures, Failure{
				ProductID:  it.Product.ID,
				Message:    res.Message,
				StatusCode: res.StatusCode,
			})
		}(it)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].ProductID < summary.Failures[j].ProductID
	})
	if !summary.AllOK() {
		uc.log.Warn().Int("failed", len(summary.Failures)).Int("submitted", summary.Submitted).
			Msg("envío del carrito con fallos parciales")
	}
	return summary, nil
}

// Package ledger implementa el ajustador del libro de stock: la única pieza
// autorizada a mutar stock.quantity, siempre como reacción a un cambio de
// estado de un documento (orden completada/descompletada, traslado, ingreso).
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bodegapro/bodega-api/internal/domain"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
	"github.com/bodegapro/bodega-api/internal/domain/repository"
)

// Movement es un ajuste pendiente sobre (producto, bodega).
// Delta negativo deduce, positivo suma.
type Movement struct {
	ProductID   string
	WarehouseID string
	Delta       decimal.Decimal
	// Unlimited: producto sin control de stock; el movimiento no toca el libro.
	Unlimited bool
	// Unchecked: no aplicar el piso de stock en deducciones (salida de traslados
	// con STOCK_ENFORCE_TRANSFER_FLOOR desactivado).
	Unchecked bool
}

// Deduction construye la deducción de una línea de orden (con piso de stock).
func Deduction(productID, warehouseID string, qty decimal.Decimal, unlimited bool) Movement {
	return Movement{ProductID: productID, WarehouseID: warehouseID, Delta: qty.Neg(), Unlimited: unlimited}
}

// Restoration construye la restauración de una línea al salir de COMPLETED.
// Se aplica como upsert: si la fila de stock desapareció se recrea, para no
// perder el evento ni bloquear una cancelación.
func Restoration(productID, warehouseID string, qty decimal.Decimal, unlimited bool) Movement {
	return Movement{ProductID: productID, WarehouseID: warehouseID, Delta: qty, Unlimited: unlimited}
}

// Addition construye una suma de stock (ingresos, entrada de traslado).
func Addition(productID, warehouseID string, qty decimal.Decimal) Movement {
	return Movement{ProductID: productID, WarehouseID: warehouseID, Delta: qty}
}

// UncheckedDeduction construye una deducción sin piso de stock.
func UncheckedDeduction(productID, warehouseID string, qty decimal.Decimal) Movement {
	return Movement{ProductID: productID, WarehouseID: warehouseID, Delta: qty.Neg(), Unchecked: true}
}

// ApplyMovements aplica todos los movimientos contra el repositorio de stock
// (atado a la transacción del caller). Cada fila se bloquea con SELECT FOR
// UPDATE antes del read-modify-write para serializar el acceso concurrente por
// (producto, bodega). El primer error aborta: ninguna aplicación parcial
// sobrevive porque la transacción del caller hace rollback.
//
// Reglas por movimiento:
//   - Unlimited: no-op, el stock registrado no cambia en ninguna dirección.
//   - Delta < 0 sin Unchecked: falla con ErrProductNotInWarehouse si no hay
//     fila, o con InsufficientStockError si quantity+delta < 0.
//   - Delta > 0 (o deducción Unchecked): upsert, creando la fila en cero si
//     no existe. Sin tope superior.
func ApplyMovements(stockRepo repository.StockRepository, movements []Movement, now time.Time) error {
	for _, m := range movements {
		if m.Unlimited {
			continue
		}
		stock, err := stockRepo.GetForUpdate(m.ProductID, m.WarehouseID)
		if err != nil {
			return err
		}
		deduction := m.Delta.IsNegative()
		if deduction && !m.Unchecked {
			if stock == nil {
				return domain.ErrProductNotInWarehouse
			}
			if stock.Quantity.Add(m.Delta).IsNegative() {
				return &domain.InsufficientStockError{
					ProductID:   m.ProductID,
					WarehouseID: m.WarehouseID,
					Available:   stock.Quantity,
					Requested:   m.Delta.Neg(),
				}
			}
		}
		if stock == nil {
			stock = &entity.Stock{ProductID: m.ProductID, WarehouseID: m.WarehouseID, Quantity: decimal.Zero}
		}
		stock.Quantity = stock.Quantity.Add(m.Delta)
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
	}
	return nil
}

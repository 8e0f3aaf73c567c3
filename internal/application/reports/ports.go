package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bodegapro/bodega-api/internal/domain/entity"
)

// DeliveryLine línea de la remisión con nombres de producto resueltos.
type DeliveryLine struct {
	SKU         string
	Name        string
	UnitMeasure string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// DeliveryNotePDFGenerator genera la remisión (nota de entrega) de una orden.
// Las órdenes que aún no están COMPLETED llevan marca de agua de borrador.
type DeliveryNotePDFGenerator interface {
	GenerateDeliveryNote(ctx context.Context, order *entity.Order, warehouse *entity.Warehouse, lines []DeliveryLine) ([]byte, error)
}

// StockExporter genera el reporte tabular de niveles de stock (xlsx).
type StockExporter interface {
	ExportStockLevels(levels []*entity.StockLevel) ([]byte, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el stock actual de un producto en una bodega.
// Es la única fuente de verdad de cuánto hay de un producto en una bodega;
// la fila se crea de forma perezosa y nunca se elimina (aunque quede en cero).
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// StockLevel es la vista de stock con nombres resueltos (para listados y exportes).
type StockLevel struct {
	ProductID     string
	SKU           string
	ProductName   string
	UnitMeasure   string
	WarehouseID   string
	WarehouseName string
	Quantity      decimal.Decimal
	UpdatedAt     time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// IsUnlimited marca productos sin control de stock: el libro de stock los
// ignora al completar o descompletar órdenes.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	UnitMeasure string
	Price       decimal.Decimal // precio de venta
	IsUnlimited bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

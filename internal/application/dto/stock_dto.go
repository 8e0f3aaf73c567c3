package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevelResponse nivel de stock de un producto en una bodega.
type StockLevelResponse struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	UnitMeasure   string          `json:"unit_measure,omitempty"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockListResponse listado paginado de niveles de stock.
type StockListResponse struct {
	Stock      []StockLevelResponse `json:"stock"`
	Pagination Pagination           `json:"pagination"`
}

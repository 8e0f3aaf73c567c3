package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceipt es un ingreso de mercancía a una bodega (solo suma stock).
type GoodsReceipt struct {
	ID           string
	Code         string // código único del documento
	Date         time.Time
	WarehouseID  string
	SupplierName string
	Note         string
	CreatedBy    string
	CreatedAt    time.Time
	Items        []*GoodsReceiptItem
}

// GoodsReceiptItem línea de ingreso.
type GoodsReceiptItem struct {
	ID        string
	ReceiptID string
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Amount    decimal.Decimal
}

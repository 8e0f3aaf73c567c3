package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado. Un traslado COMPLETED es efectivo al crearse;
// no hay promoción posterior de DRAFT a COMPLETED.
const (
	TransferStatusDraft     = "DRAFT"
	TransferStatusCompleted = "COMPLETED"
)

// StockTransfer mueve mercancía entre dos bodegas distintas.
type StockTransfer struct {
	ID              string
	Code            string // código único del documento
	Date            time.Time
	FromWarehouseID string
	ToWarehouseID   string
	Status          string
	Note            string
	CreatedBy       string
	CreatedAt       time.Time
	Items           []*StockTransferItem
}

// StockTransferItem línea de traslado. QuantityOut se descuenta en origen y
// QuantityIn se suma en destino; pueden diferir (merma en tránsito).
type StockTransferItem struct {
	ID          string
	TransferID  string
	ProductID   string
	QuantityOut decimal.Decimal
	QuantityIn  decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

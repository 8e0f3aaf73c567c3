package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest línea de traslado en creación.
type TransferItemRequest struct {
	ProductID   string          `json:"product_id"`
	QuantityOut decimal.Decimal `json:"quantity_out"`
	QuantityIn  decimal.Decimal `json:"quantity_in"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateTransferRequest alta de traslado entre bodegas.
type CreateTransferRequest struct {
	Code            string                `json:"code"`
	Date            time.Time             `json:"date"`
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Status          string                `json:"status"` // vacío = COMPLETED
	Note            string                `json:"note"`
	Items           []TransferItemRequest `json:"items"`
}

// TransferItemResponse línea de traslado en respuestas.
type TransferItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	QuantityOut decimal.Decimal `json:"quantity_out"`
	QuantityIn  decimal.Decimal `json:"quantity_in"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// TransferResponse representación HTTP de un traslado.
type TransferResponse struct {
	ID              string                 `json:"id"`
	Code            string                 `json:"code"`
	Date            time.Time              `json:"date"`
	FromWarehouseID string                 `json:"from_warehouse_id"`
	ToWarehouseID   string                 `json:"to_warehouse_id"`
	Status          string                 `json:"status"`
	Note            string                 `json:"note,omitempty"`
	CreatedBy       string                 `json:"created_by"`
	CreatedAt       time.Time              `json:"created_at"`
	Items           []TransferItemResponse `json:"items"`
}

// TransferListResponse listado paginado de traslados.
type TransferListResponse struct {
	Transfers  []TransferResponse `json:"transfers"`
	Pagination Pagination         `json:"pagination"`
}

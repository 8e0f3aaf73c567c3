package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptItemRequest línea de ingreso en creación.
type ReceiptItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreateReceiptRequest alta de ingreso de mercancía.
type CreateReceiptRequest struct {
	Code         string               `json:"code"`
	Date         time.Time            `json:"date"`
	WarehouseID  string               `json:"warehouse_id"`
	SupplierName string               `json:"supplier_name"`
	Note         string               `json:"note"`
	Items        []ReceiptItemRequest `json:"items"`
}

// ReceiptItemResponse línea de ingreso en respuestas.
type ReceiptItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Amount    decimal.Decimal `json:"amount"`
}

// ReceiptResponse representación HTTP de un ingreso.
type ReceiptResponse struct {
	ID           string                `json:"id"`
	Code         string                `json:"code"`
	Date         time.Time             `json:"date"`
	WarehouseID  string                `json:"warehouse_id"`
	SupplierName string                `json:"supplier_name,omitempty"`
	Note         string                `json:"note,omitempty"`
	CreatedBy    string                `json:"created_by"`
	CreatedAt    time.Time             `json:"created_at"`
	Items        []ReceiptItemResponse `json:"items"`
}

// ReceiptListResponse listado paginado de ingresos.
type ReceiptListResponse struct {
	Receipts   []ReceiptResponse `json:"receipts"`
	Pagination Pagination        `json:"pagination"`
}

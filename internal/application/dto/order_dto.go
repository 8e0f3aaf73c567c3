package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de orden en creación.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest alta de orden de venta.
type CreateOrderRequest struct {
	Code         string             `json:"code"`
	WarehouseID  string             `json:"warehouse_id"`
	CustomerName string             `json:"customer_name"`
	Status       string             `json:"status"` // vacío = DRAFT
	Note         string             `json:"note"`
	Items        []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest cambio de estado y/o adjuntos de una orden.
// Los campos nil no se tocan.
type UpdateOrderRequest struct {
	Status             *string `json:"status"`
	DocumentPath       *string `json:"document_path"`
	PaymentReceiptPath *string `json:"payment_receipt_path"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// OrderResponse representación HTTP de una orden.
type OrderResponse struct {
	ID                 string              `json:"id"`
	Code               string              `json:"code"`
	Status             string              `json:"status"`
	WarehouseID        string              `json:"warehouse_id"`
	CustomerName       string              `json:"customer_name,omitempty"`
	DocumentPath       string              `json:"document_path,omitempty"`
	PaymentReceiptPath string              `json:"payment_receipt_path,omitempty"`
	Note               string              `json:"note,omitempty"`
	CreatedBy          string              `json:"created_by"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Items              []OrderItemResponse `json:"items"`
}

// OrderListResponse listado paginado de órdenes.
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Pagination Pagination      `json:"pagination"`
}

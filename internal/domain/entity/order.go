package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta. Solo entrar o salir de COMPLETED mueve stock.
const (
	OrderStatusDraft      = "DRAFT"
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

var orderStatuses = map[string]bool{
	OrderStatusDraft:      true,
	OrderStatusPending:    true,
	OrderStatusConfirmed:  true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}

// IsValidOrderStatus reporta si s es un estado de orden conocido.
func IsValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

// Order es una orden de venta: documento con estado, bodega de despacho y líneas.
type Order struct {
	ID                 string
	Code               string // código único del documento
	Status             string
	WarehouseID        string // bodega que despacha
	CustomerName       string
	DocumentPath       string // archivo adjunto (remisión firmada, etc.)
	PaymentReceiptPath string // comprobante de pago adjunto
	Note               string
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Items              []*OrderItem
}

// OrderItem línea de una orden: producto y cantidad a despachar.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

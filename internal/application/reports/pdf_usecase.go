// Package reports arma los documentos imprimibles: remisión PDF por orden y
// exporte xlsx de niveles de stock.
package reports

import (
	"context"

	"github.com/bodegapro/bodega-api/internal/domain"
	"github.com/bodegapro/bodega-api/internal/domain/repository"
)

// PDFUseCase genera la remisión de una orden.
type PDFUseCase struct {
	orderRepo     repository.OrderRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	generator     DeliveryNotePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	orderRepo repository.OrderRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	generator DeliveryNotePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		orderRepo:     orderRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		generator:     generator,
	}
}

// GenerateOrderPDF carga la orden con sus líneas, resuelve nombres de producto
// y bodega, y delega el armado del PDF al generador.
func (uc *PDFUseCase) GenerateOrderPDF(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(order.WarehouseID)
	if err != nil || warehouse == nil {
		return nil, "", domain.ErrNotFound
	}

	lines := make([]DeliveryLine, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, "", domain.ErrNotFound
		}
		lines = append(lines, DeliveryLine{
			SKU:         product.SKU,
			Name:        product.Name,
			UnitMeasure: product.UnitMeasure,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}

	pdfBytes, err := uc.generator.GenerateDeliveryNote(ctx, order, warehouse, lines)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, "remision-" + order.Code + ".pdf", nil
}

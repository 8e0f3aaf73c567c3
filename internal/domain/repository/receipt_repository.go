package repository

import "github.com/bodegapro/bodega-api/internal/domain/entity"

// ReceiptFilter filtros para listar ingresos.
type ReceiptFilter struct {
	Search string // code contiene
	Limit  int
	Offset int
}

// ReceiptRepository define el puerto de persistencia para GoodsReceipt.
type ReceiptRepository interface {
	Create(receipt *entity.GoodsReceipt) error
	CreateItem(item *entity.GoodsReceiptItem) error
	GetByID(id string) (*entity.GoodsReceipt, error) // incluye Items
	GetByCode(code string) (*entity.GoodsReceipt, error)
	List(filter ReceiptFilter) ([]*entity.GoodsReceipt, int, error)
}

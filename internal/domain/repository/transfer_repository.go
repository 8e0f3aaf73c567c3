package repository

import "github.com/bodegapro/bodega-api/internal/domain/entity"

// TransferFilter filtros para listar traslados.
type TransferFilter struct {
	Search string // code contiene
	Status string
	Limit  int
	Offset int
}

// TransferRepository define el puerto de persistencia para StockTransfer.
type TransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	CreateItem(item *entity.StockTransferItem) error
	GetByID(id string) (*entity.StockTransfer, error) // incluye Items
	GetByCode(code string) (*entity.StockTransfer, error)
	List(filter TransferFilter) ([]*entity.StockTransfer, int, error)
}

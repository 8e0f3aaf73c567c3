package repository

import "github.com/bodegapro/bodega-api/internal/domain/entity"

// StockFilter filtros para listar niveles de stock.
type StockFilter struct {
	WarehouseID string
	ProductID   string
	Limit       int
	Offset      int
}

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Get y GetForUpdate devuelven nil (sin error) cuando la fila no existe, para
// que el libro de stock distinga "producto sin stock registrado" de "stock cero".
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) antes del read-modify-write.
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListLevels(filter StockFilter) ([]*entity.StockLevel, int, error)
}

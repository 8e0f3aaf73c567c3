package usecase

import (
	"github.com/bodegapro/bodega-api/internal/application/dto"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
	"github.com/bodegapro/bodega-api/internal/domain/repository"
)

// StockUseCase consultas de solo lectura sobre el libro de stock.
// Toda mutación pasa por el ledger; aquí no hay escrituras.
type StockUseCase struct {
	stockRepo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stockRepo repository.StockRepository) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo}
}

// List lista niveles de stock filtrando por bodega y/o producto.
func (uc *StockUseCase) List(warehouseID, productID string, page dto.PageRequest) (*dto.StockListResponse, error) {
	page.DefaultPage()
	levels, total, err := uc.stockRepo.ListLevels(repository.StockFilter{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Limit:       page.Limit,
		Offset:      page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.StockListResponse{
		Stock:      make([]dto.StockLevelResponse, 0, len(levels)),
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}
	for _, lv := range levels {
		out.Stock = append(out.Stock, toStockLevelResponse(lv))
	}
	return out, nil
}

func toStockLevelResponse(lv *entity.StockLevel) dto.StockLevelResponse {
	return dto.StockLevelResponse{
		ProductID:     lv.ProductID,
		SKU:           lv.SKU,
		ProductName:   lv.ProductName,
		UnitMeasure:   lv.UnitMeasure,
		WarehouseID:   lv.WarehouseID,
		WarehouseName: lv.WarehouseName,
		Quantity:      lv.Quantity,
		UpdatedAt:     lv.UpdatedAt,
	}
}

package reports

import (
	"github.com/bodegapro/bodega-api/internal/domain/repository"
)

// ExcelUseCase exporta los niveles de stock a un libro xlsx.
type ExcelUseCase struct {
	stockRepo repository.StockRepository
	exporter  StockExporter
}

// NewExcelUseCase construye el caso de uso.
func NewExcelUseCase(stockRepo repository.StockRepository, exporter StockExporter) *ExcelUseCase {
	return &ExcelUseCase{stockRepo: stockRepo, exporter: exporter}
}

// ExportStock genera el xlsx con los niveles actuales (opcionalmente de una
// sola bodega) y devuelve bytes + nombre de archivo sugerido.
func (uc *ExcelUseCase) ExportStock(warehouseID string) ([]byte, string, error) {
	levels, _, err := uc.stockRepo.ListLevels(repository.StockFilter{WarehouseID: warehouseID})
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportStockLevels(levels)
	if err != nil {
		return nil, "", err
	}
	return data, "stock.xlsx", nil
}

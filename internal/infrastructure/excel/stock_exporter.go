// Package excel genera el reporte xlsx de niveles de stock.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bodegapro/bodega-api/internal/application/reports"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
)

var _ reports.StockExporter = (*StockExporter)(nil)

const sheetName = "Stock"

var headers = []string{"SKU", "Producto", "Unidad", "Bodega", "Cantidad", "Actualizado"}

// StockExporter implementa reports.StockExporter usando excelize.
type StockExporter struct{}

// NewStockExporter construye el exportador.
func NewStockExporter() *StockExporter { return &StockExporter{} }

// ExportStockLevels genera el libro con una fila por (producto, bodega).
func (e *StockExporter) ExportStockLevels(levels []*entity.StockLevel) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: crear estilo: %w", err)
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, level := range levels {
		qty, _ := level.Quantity.Float64()
		values := []any{
			level.SKU,
			level.ProductName,
			level.UnitMeasure,
			level.WarehouseName,
			qty,
			level.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", string(rune('A'+colIdx)), rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bodegapro/bodega-api/internal/application/reports"
)

// ReportHandler expone los reportes descargables.
type ReportHandler struct {
	excelUC *reports.ExcelUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(excelUC *reports.ExcelUseCase) *ReportHandler {
	return &ReportHandler{excelUC: excelUC}
}

// StockExcel godoc
// @Summary      Descargar reporte de stock (xlsx)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {file}  binary
// @Router       /api/reports/stock.xlsx [get]
func (h *ReportHandler) StockExcel(c *fiber.Ctx) error {
	data, filename, err := h.excelUC.ExportStock(c.Query("warehouse_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

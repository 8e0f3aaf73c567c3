package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bodegapro/bodega-api/internal/application/dto"
	"github.com/bodegapro/bodega-api/internal/application/usecase"
)

// ActivityHandler expone la bitácora de actividad (solo lectura).
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Consultar bitácora de actividad
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        entity   query  string  false  "Tipo de entidad (order, transfer, receipt)"
// @Param        action   query  string  false  "CREATE | UPDATE | DELETE"
// @Param        user_id  query  string  false  "Filtrar por usuario"
// @Param        page     query  int     false  "Página"  default(1)
// @Param        limit    query  int     false  "Límite"  default(20)
// @Success      200      {object}  dto.ActivityListResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Query("entity"), c.Query("action"), c.Query("user_id"), page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

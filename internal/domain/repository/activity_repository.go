package repository

import "github.com/bodegapro/bodega-api/internal/domain/entity"

// ActivityFilter filtros para la bitácora de actividad.
type ActivityFilter struct {
	Entity string
	Action string
	UserID string
	Limit  int
	Offset int
}

// ActivityRepository define el puerto de persistencia para ActivityLog.
type ActivityRepository interface {
	Create(log *entity.ActivityLog) error
	List(filter ActivityFilter) ([]*entity.ActivityLog, int, error)
}

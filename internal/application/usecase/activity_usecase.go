package usecase

import (
	"github.com/bodegapro/bodega-api/internal/application/dto"
	"github.com/bodegapro/bodega-api/internal/domain/repository"
)

// ActivityUseCase consulta de la bitácora de actividad.
type ActivityUseCase struct {
	activityRepo repository.ActivityRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(activityRepo repository.ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{activityRepo: activityRepo}
}

// List lista la bitácora filtrando por entidad, acción y usuario.
func (uc *ActivityUseCase) List(entityName, action, userID string, page dto.PageRequest) (*dto.ActivityListResponse, error) {
	page.DefaultPage()
	logs, total, err := uc.activityRepo.List(repository.ActivityFilter{
		Entity: entityName,
		Action: action,
		UserID: userID,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ActivityListResponse{
		Activity:   make([]dto.ActivityLogResponse, 0, len(logs)),
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}
	for _, lg := range logs {
		out.Activity = append(out.Activity, dto.ActivityLogResponse{
			ID:        lg.ID,
			UserID:    lg.UserID,
			Action:    lg.Action,
			Entity:    lg.Entity,
			EntityID:  lg.EntityID,
			Detail:    lg.Detail,
			CreatedAt: lg.CreatedAt,
		})
	}
	return out, nil
}

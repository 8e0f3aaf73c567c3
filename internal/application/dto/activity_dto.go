package dto

import "time"

// ActivityLogResponse entrada de la bitácora de actividad.
type ActivityLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityListResponse listado paginado de actividad.
type ActivityListResponse struct {
	Activity   []ActivityLogResponse `json:"activity"`
	Pagination Pagination            `json:"pagination"`
}

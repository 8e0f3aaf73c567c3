package entity

import "time"

// Acciones registradas en la bitácora de actividad.
const (
	ActivityCreate = "CREATE"
	ActivityUpdate = "UPDATE"
	ActivityDelete = "DELETE"
)

// ActivityLog registro de actividad de usuario sobre un documento.
// Se escribe después del commit de la transacción de negocio, nunca dentro.
type ActivityLog struct {
	ID        string
	UserID    string
	Action    string // CREATE | UPDATE | DELETE
	Entity    string // "order" | "transfer" | "receipt" | ...
	EntityID  string
	Detail    string
	CreatedAt time.Time
}

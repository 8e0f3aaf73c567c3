package repository

import "github.com/bodegapro/bodega-api/internal/domain/entity"

// OrderFilter filtros para listar órdenes.
type OrderFilter struct {
	Search string // code contiene
	Status string
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Usado dentro de transacciones junto al libro de stock para que el estado del
// documento y el stock no diverjan.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error) // incluye Items
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) antes de decidir una
	// transición de estado, para que dos requests concurrentes no muevan stock
	// dos veces sobre la misma orden.
	GetForUpdate(id string) (*entity.Order, error)
	GetByCode(code string) (*entity.Order, error)
	Update(order *entity.Order) error
	Delete(id string) error // elimina líneas y cabecera
	List(filter OrderFilter) ([]*entity.Order, int, error)
}

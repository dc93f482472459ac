package repository

import (
	"time"

	"github.com/dcastano/bodega-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
// ProductID vacío = todos los productos; From/To nil = sin cota.
type MovementFilter struct {
	ProductID string
	From      *time.Time
	To        *time.Time
}

// InventoryMovementRepository define el puerto de persistencia para el libro
// de movimientos. No hay Update ni Delete: la historia es inmutable.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	// List aplica el filtro y ordena descendente por fecha (más reciente primero).
	List(filter MovementFilter) ([]*entity.InventoryMovement, error)
	CountByProduct(productID string) (int64, error)
}

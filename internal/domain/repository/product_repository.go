package repository

import "github.com/dcastano/bodega-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Usado por el libro de movimientos dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe el saldo materializado. Solo el libro de
	// movimientos debe llamarlo, dentro de la misma transacción que
	// persiste el movimiento.
	UpdateStock(id string, stock int64) error
	// List filtra por subcadena (case-insensitive) contra name o sku.
	// q vacío lista todo. Orden ascendente por nombre.
	List(q string) ([]*entity.Product, error)
	Delete(id string) error
}

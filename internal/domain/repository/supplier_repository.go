package repository

import "github.com/dcastano/bodega-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	// List ordena ascendente por nombre.
	List() ([]*entity.Supplier, error)
	Delete(id string) error
}

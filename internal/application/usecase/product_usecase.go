package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/dcastano/bodega-api/internal/application/dto"
	"github.com/dcastano/bodega-api/internal/domain"
	"github.com/dcastano/bodega-api/internal/domain/entity"
	"github.com/dcastano/bodega-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El Stock es un saldo
// materializado que solo modifica el libro de movimientos; aquí nunca se
// escribe salvo su valor inicial (0).
type ProductUseCase struct {
	repo    repository.ProductRepository
	movRepo repository.InventoryMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movRepo repository.InventoryMovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, movRepo: movRepo}
}

// Create crea un nuevo producto con stock 0. SKU único (coincidencia exacta).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSKU
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		CostPrice:   in.CostPrice,
		SalePrice:   in.SalePrice,
		Stock:       0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza campos de un producto. Si el SKU cambia y colisiona con
// otro producto falla con ErrDuplicateSKU; actualizarlo a su propio valor
// es válido. El Stock no se toca aquí.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		if *in.SKU == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, domain.ErrDuplicateSKU
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Subcategory != nil {
		product.Subcategory = *in.Subcategory
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos, con filtro opcional por subcadena contra name o sku
// (case-insensitive). Orden ascendente por nombre.
func (uc *ProductUseCase) List(q string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto. Falla con ErrConflict si existen movimientos
// que lo referencian: la historia del libro es auditable y no se deja huérfana.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	n, err := uc.movRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
	}
}

package inventory

import (
	"context"
	"time"

	"github.com/dcastano/bodega-api/internal/application/dto"
	"github.com/dcastano/bodega-api/internal/domain"
	"github.com/dcastano/bodega-api/internal/domain/entity"
	"github.com/dcastano/bodega-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional (entry, sale, adjustment) con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback. Es la única vía de escritura del
// saldo de stock: cada movimiento queda como historia inmutable y el saldo
// materializado del producto se actualiza en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository

	// allowNegativeAdjustment preserva el comportamiento original: los
	// ajustes pueden dejar el stock negativo. Con false se aplica el mismo
	// piso que en las ventas.
	allowNegativeAdjustment bool
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	allowNegativeAdjustment bool,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:                txRunner,
		productRepo:             productRepo,
		supplierRepo:            supplierRepo,
		allowNegativeAdjustment: allowNegativeAdjustment,
	}
}

// RegisterMovement valida la entrada, inicia una transacción, bloquea la
// fila del producto, aplica la regla de saldo según el tipo y persiste
// movimiento + nuevo stock juntos. Commit si todo ok, Rollback si algo falla.
//
// Reglas por tipo sobre el stock actual:
//
//	entry:      stock + quantity (se espera quantity >= 0, no se fuerza)
//	sale:       requiere stock - quantity >= 0, si no ErrInsufficientStock
//	adjustment: stock + quantity, quantity puede ser negativo
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidMovementType
	}

	// Validaciones de existencia fuera de la transacción: fallar rápido y
	// barato antes de tomar el lock de fila.
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	mov := &entity.InventoryMovement{
		ProductID:  in.ProductID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		SupplierID: in.SupplierID,
		Notes:      in.Notes,
		Date:       now,
		CreatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Re-leer con lock: el chequeo de suficiencia debe hacerse sobre el
		// saldo que esta transacción va a escribir, no sobre uno viejo.
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		var newStock int64
		switch in.Type {
		case entity.MovementTypeEntry:
			newStock = locked.Stock + in.Quantity
		case entity.MovementTypeSale:
			if locked.Stock-in.Quantity < 0 {
				return domain.ErrInsufficientStock
			}
			newStock = locked.Stock - in.Quantity
		case entity.MovementTypeAdjustment:
			newStock = locked.Stock + in.Quantity
			if newStock < 0 && !uc.allowNegativeAdjustment {
				return domain.ErrInsufficientStock
			}
		}

		if err := productRepo.UpdateStock(in.ProductID, newStock); err != nil {
			return err
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	var supplierID *string
	if m.SupplierID != "" {
		supplierID = &m.SupplierID
	}
	return &dto.MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		SupplierID: supplierID,
		Notes:      m.Notes,
		Date:       m.Date,
	}
}

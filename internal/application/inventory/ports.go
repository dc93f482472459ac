package inventory

import (
	"context"

	"github.com/dcastano/bodega-api/internal/domain/entity"
	"github.com/dcastano/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el movimiento y el nuevo saldo
// del producto se confirmen como una sola unidad: si algo falla, nada queda
// aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// MovementReportRow fila del reporte de movimientos: el movimiento más los
// datos del producto ya resueltos para presentación.
type MovementReportRow struct {
	Movement    *entity.InventoryMovement
	ProductSKU  string
	ProductName string
}

// ReportGenerator genera la representación PDF del historial de movimientos.
type ReportGenerator interface {
	GenerateMovementsReport(ctx context.Context, rows []MovementReportRow) ([]byte, error)
}

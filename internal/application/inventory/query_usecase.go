package inventory

import (
	"context"
	"time"

	"github.com/dcastano/bodega-api/internal/application/dto"
	"github.com/dcastano/bodega-api/internal/domain/entity"
	"github.com/dcastano/bodega-api/internal/domain/repository"
)

// MovementQueryUseCase lado de lectura del libro de movimientos: listados
// filtrados y reporte PDF. No muta nada.
type MovementQueryUseCase struct {
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
	reportGen   ReportGenerator
}

// NewMovementQueryUseCase construye el caso de uso. reportGen puede ser nil
// si el reporte PDF no está habilitado.
func NewMovementQueryUseCase(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	reportGen ReportGenerator,
) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, productRepo: productRepo, reportGen: reportGen}
}

// List lista movimientos con filtros opcionales: productID exacto y rango
// inclusivo [from, to]. Orden descendente por fecha.
func (uc *MovementQueryUseCase) List(productID string, from, to *time.Time) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.List(repository.MovementFilter{ProductID: productID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toMovementResponse(m), nil
}

// ReportPDF genera el reporte PDF del historial filtrado (mismos filtros que
// List), resolviendo SKU y nombre de producto por fila.
func (uc *MovementQueryUseCase) ReportPDF(ctx context.Context, productID string, from, to *time.Time) ([]byte, error) {
	movements, err := uc.movRepo.List(repository.MovementFilter{ProductID: productID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List("")
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	rows := make([]MovementReportRow, 0, len(movements))
	for _, m := range movements {
		row := MovementReportRow{Movement: m}
		if p, ok := byID[m.ProductID]; ok {
			row.ProductSKU = p.SKU
			row.ProductName = p.Name
		}
		rows = append(rows, row)
	}
	return uc.reportGen.GenerateMovementsReport(ctx, rows)
}

package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/bodega-api/internal/application/inventory"
	"github.com/dcastano/bodega-api/internal/domain/entity"
	"github.com/dcastano/bodega-api/internal/infrastructure/pdf"
)

func sampleRows() []inventory.MovementReportRow {
	date := time.Date(2026, time.March, 5, 10, 30, 0, 0, time.UTC)
	return []inventory.MovementReportRow{
		{
			Movement: &entity.InventoryMovement{
				ID: "m2", ProductID: "p1", Type: entity.MovementTypeSale,
				Quantity: 3, Date: date.Add(24 * time.Hour),
			},
			ProductSKU:  "WIDGET001",
			ProductName: "Widget",
		},
		{
			Movement: &entity.InventoryMovement{
				ID: "m1", ProductID: "p1", Type: entity.MovementTypeEntry,
				Quantity: 100, Date: date, Notes: "carga inicial",
			},
			ProductSKU:  "WIDGET001",
			ProductName: "Widget",
		},
	}
}

func TestGenerateMovementsReport_ProduceUnPDF(t *testing.T) {
	gen := pdf.NewMarotoReportGenerator()

	out, err := gen.GenerateMovementsReport(context.Background(), sampleRows())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "los bytes deben empezar con la firma PDF")
}

func TestGenerateMovementsReport_SinFilas(t *testing.T) {
	gen := pdf.NewMarotoReportGenerator()

	out, err := gen.GenerateMovementsReport(context.Background(), nil)
	require.NoError(t, err, "un historial vacío genera un reporte válido, solo con encabezado y resumen")
	assert.NotEmpty(t, out)
}

// Package pdf implementa el reporte imprimible del historial de movimientos
// de inventario (kardex simple).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango/filtro + fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | SKU | Producto | Tipo | Cantidad | Notas     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: movimientos, entradas, ventas, ajustes             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dcastano/bodega-api/internal/application/inventory"
	"github.com/dcastano/bodega-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementsReport genera el PDF y devuelve sus bytes. Las filas
// llegan ya ordenadas (más reciente primero).
func (g *MarotoReportGenerator) GenerateMovementsReport(_ context.Context, rows []inventory.MovementReportRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de movimientos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(total int) core.Row {
	generated := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("HISTORIAL DE MOVIMIENTOS DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d movimientos", total), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generated, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(6).Add(
		header("Fecha", 2),
		header("SKU", 2),
		header("Producto", 3),
		header("Tipo", 1),
		header("Cantidad", 1),
		header("Notas", 3),
	)
}

func tableDetailRow(r inventory.MovementReportRow) core.Row {
	m := r.Movement
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(5).Add(
		cell(m.Date.Format("02/01/2006 15:04"), 2, align.Left),
		cell(r.ProductSKU, 2, align.Left),
		cell(r.ProductName, 3, align.Left),
		cell(m.Type, 1, align.Left),
		cell(fmt.Sprintf("%d", m.Quantity), 1, align.Right),
		cell(m.Notes, 3, align.Left),
	)
}

func summaryRow(rows []inventory.MovementReportRow) core.Row {
	var entries, sales, adjustments int
	for _, r := range rows {
		switch r.Movement.Type {
		case entity.MovementTypeEntry:
			entries++
		case entity.MovementTypeSale:
			sales++
		case entity.MovementTypeAdjustment:
			adjustments++
		}
	}
	resumen := fmt.Sprintf("Entradas: %d   |   Ventas: %d   |   Ajustes: %d", entries, sales, adjustments)
	return row.New(8).Add(
		col.New(12).Add(
			text.New(resumen, props.Text{Size: 9, Top: 2, Color: colorGray}),
		),
	)
}

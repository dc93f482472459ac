package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto (SKU) del catálogo.
// Stock es el saldo autoritativo de unidades en mano; solo el libro de
// movimientos lo modifica, nunca la edición de campos del producto.
type Product struct {
	ID          string
	SKU         string // código único de negocio
	Name        string
	Category    string
	Subcategory string
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. Stock inicia en 0 y
// solo cambia vía movimientos.
type CreateProductRequest struct {
	SKU         string          `json:"sku" form:"sku"`
	Name        string          `json:"name" form:"name"`
	Category    string          `json:"category" form:"category"`
	Subcategory string          `json:"subcategory" form:"subcategory"`
	CostPrice   decimal.Decimal `json:"cost_price" form:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price" form:"sale_price"`
}

// UpdateProductRequest entrada para actualizar un producto (parcial, sin Stock).
type UpdateProductRequest struct {
	SKU         *string          `json:"sku" form:"sku"`
	Name        *string          `json:"name" form:"name"`
	Category    *string          `json:"category" form:"category"`
	Subcategory *string          `json:"subcategory" form:"subcategory"`
	CostPrice   *decimal.Decimal `json:"cost_price" form:"cost_price"`
	SalePrice   *decimal.Decimal `json:"sale_price" form:"sale_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       int64           `json:"stock"`
}

package dto

import "time"

// RegisterMovementRequest body para POST /api/movements y para el
// formulario de /movements/add. La fecha la asigna el servidor.
type RegisterMovementRequest struct {
	ProductID  string `json:"product_id" form:"product_id"`
	Type       string `json:"type" form:"type"`
	Quantity   int64  `json:"quantity" form:"quantity"`
	SupplierID string `json:"supplier_id" form:"supplier_id"`
	Notes      string `json:"notes" form:"notes"`
}

// MovementResponse salida de un movimiento. supplier_id es null cuando el
// movimiento no referencia proveedor.
type MovementResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	SupplierID *string   `json:"supplier_id"`
	Notes      string    `json:"notes"`
	Date       time.Time `json:"date"`
}

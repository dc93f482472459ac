package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry      = "entry"      // entrada de mercancía
	MovementTypeSale       = "sale"       // venta
	MovementTypeAdjustment = "adjustment" // ajuste (puede ser negativo)
)

// ValidMovementType indica si el tipo pertenece al conjunto cerrado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeSale, MovementTypeAdjustment:
		return true
	}
	return false
}

// InventoryMovement representa un movimiento de inventario. Los movimientos
// son inmutables una vez creados: forman la historia auditable del stock y
// no existe operación de actualización ni borrado sobre ellos.
type InventoryMovement struct {
	ID         string
	ProductID  string
	Type       string
	Quantity   int64  // entero con signo; para sale se interpreta como unidades vendidas
	SupplierID string // opcional, vacío = sin proveedor
	Notes      string
	Date       time.Time
	CreatedAt  time.Time
}

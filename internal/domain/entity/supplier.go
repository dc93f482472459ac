package entity

import "time"

// Supplier representa un proveedor. Referenciado opcionalmente por los
// movimientos de tipo entrada.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

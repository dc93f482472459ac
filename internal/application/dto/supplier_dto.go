package dto

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" form:"name"`
	Contact string `json:"contact" form:"contact"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor (parcial).
type UpdateSupplierRequest struct {
	Name    *string `json:"name" form:"name"`
	Contact *string `json:"contact" form:"contact"`
	Phone   *string `json:"phone" form:"phone"`
	Address *string `json:"address" form:"address"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

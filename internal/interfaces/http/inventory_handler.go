package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/bodega-api/internal/application/dto"
	"github.com/dcastano/bodega-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones JSON del libro de movimientos.
// Los movimientos no tienen update ni delete: son historia inmutable.
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.MovementQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, query *inventory.MovementQueryUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Registra un movimiento (entry, sale, adjustment) y actualiza el stock del producto en la misma transacción.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity; supplier_id y notes opcionales"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.register.RegisterMovement(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Filtros opcionales: product_id exacto, rango inclusivo from_date/to_date (ISO 8601; fechas mal formadas se ignoran). Orden descendente por fecha.
// @Tags         movements
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from_date   query  string  false  "Desde (inclusive)"
// @Param        to_date     query  string  false  "Hasta (inclusive)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	from := parseDateParam(c.Query("from_date"))
	to := parseDateParam(c.Query("to_date"))
	out, err := h.query.List(c.Query("product_id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF del historial de movimientos
// @Description  Mismos filtros que el listado; devuelve el historial como PDF.
// @Tags         movements
// @Produce      application/pdf
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from_date   query  string  false  "Desde (inclusive)"
// @Param        to_date     query  string  false  "Hasta (inclusive)"
// @Success      200  {file}  byte
// @Router       /api/movements/report [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	from := parseDateParam(c.Query("from_date"))
	to := parseDateParam(c.Query("to_date"))
	pdf, err := h.query.ReportPDF(c.Context(), c.Query("product_id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.pdf"`)
	return c.Send(pdf)
}

// parseDateParam interpreta un parámetro de fecha ISO 8601 (con u hora o
// solo fecha). Entradas mal formadas se ignoran en silencio: el filtro
// simplemente no se aplica.
func parseDateParam(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

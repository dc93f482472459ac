package http

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/dcastano/bodega-api/internal/application/dto"
	"github.com/dcastano/bodega-api/internal/application/inventory"
	"github.com/dcastano/bodega-api/internal/application/usecase"
	"github.com/dcastano/bodega-api/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Cada página se compone con el layout compartido; el set se parsea una vez
// al cargar el paquete.
var (
	tmplProducts     = mustPage("products.html")
	tmplProductForm  = mustPage("product_form.html")
	tmplSuppliers    = mustPage("suppliers.html")
	tmplSupplierForm = mustPage("supplier_form.html")
	tmplMovements    = mustPage("movements.html")
	tmplMovementForm = mustPage("movement_form.html")
)

func mustPage(name string) *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name))
}

// WebHandler sirve las páginas renderizadas en servidor y los formularios.
// Es un adaptador delgado: toda la lógica de negocio vive en los mismos
// casos de uso que consume la API JSON.
type WebHandler struct {
	productUC  *usecase.ProductUseCase
	supplierUC *usecase.SupplierUseCase
	register   *inventory.RegisterMovementUseCase
	query      *inventory.MovementQueryUseCase
}

// NewWebHandler construye el handler.
func NewWebHandler(
	productUC *usecase.ProductUseCase,
	supplierUC *usecase.SupplierUseCase,
	register *inventory.RegisterMovementUseCase,
	query *inventory.MovementQueryUseCase,
) *WebHandler {
	return &WebHandler{productUC: productUC, supplierUC: supplierUC, register: register, query: query}
}

func render(c *fiber.Ctx, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return respondError(c, err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductList GET /products — listado con filtro q.
func (h *WebHandler) ProductList(c *fiber.Ctx) error {
	q := c.Query("q")
	products, err := h.productUC.List(q)
	if err != nil {
		return respondError(c, err)
	}
	return render(c, tmplProducts, fiber.Map{"Products": products, "Q": q})
}

// ProductAddForm GET /products/add.
func (h *WebHandler) ProductAddForm(c *fiber.Ctx) error {
	return render(c, tmplProductForm, fiber.Map{"Product": nil})
}

// ProductAdd POST /products/add — crea y redirige 303 al listado.
func (h *WebHandler) ProductAdd(c *fiber.Ctx) error {
	in := dto.CreateProductRequest{
		SKU:         c.FormValue("sku"),
		Name:        c.FormValue("name"),
		Category:    c.FormValue("category"),
		Subcategory: c.FormValue("subcategory"),
		CostPrice:   formDecimal(c, "cost_price"),
		SalePrice:   formDecimal(c, "sale_price"),
	}
	if _, err := h.productUC.Create(in); err != nil {
		return respondError(c, err)
	}
	return c.Redirect("/products", fiber.StatusSeeOther)
}

// ProductEditForm GET /products/edit/:id.
func (h *WebHandler) ProductEditForm(c *fiber.Ctx) error {
	product, err := h.productUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return render(c, tmplProductForm, fiber.Map{"Product": product})
}

// ProductEdit POST /products/edit/:id — el formulario envía todos los campos.
func (h *WebHandler) ProductEdit(c *fiber.Ctx) error {
	sku := c.FormValue("sku")
	name := c.FormValue("name")
	category := c.FormValue("category")
	subcategory := c.FormValue("subcategory")
	costPrice := formDecimal(c, "cost_price")
	salePrice := formDecimal(c, "sale_price")
	in := dto.UpdateProductRequest{
		SKU:         &sku,
		Name:        &name,
		Category:    &category,
		Subcategory: &subcategory,
		CostPrice:   &costPrice,
		SalePrice:   &salePrice,
	}
	if _, err := h.productUC.Update(c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.Redirect("/products", fiber.StatusSeeOther)
}

// ProductDelete POST /products/delete/:id.
func (h *WebHandler) ProductDelete(c *fiber.Ctx) error {
	if err := h.productUC.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.Redirect("/products", fiber.StatusSeeOther)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// SupplierList GET /suppliers.
func (h *WebHandler) SupplierList(c *fiber.Ctx) error {
	suppliers, err := h.supplierUC.List()
	if err != nil {
		return respondError(c, err)
	}
	return render(c, tmplSuppliers, fiber.Map{"Suppliers": suppliers})
}

// SupplierAddForm GET /suppliers/add.
func (h *WebHandler) SupplierAddForm(c *fiber.Ctx) error {
	return render(c, tmplSupplierForm, fiber.Map{"Supplier": nil})
}

// SupplierAdd POST /suppliers/add.
func (h *WebHandler) SupplierAdd(c *fiber.Ctx) error {
	in := dto.CreateSupplierRequest{
		Name:    c.FormValue("name"),
		Contact: c.FormValue("contact"),
		Phone:   c.FormValue("phone"),
		Address: c.FormValue("address"),
	}
	if _, err := h.supplierUC.Create(in); err != nil {
		return respondError(c, err)
	}
	return c.Redirect("/suppliers", fiber.StatusSeeOther)
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// MovementList GET /movements — historial filtrable; fechas mal formadas se
// ignoran, igual que en la API JSON.
func (h *WebHandler) MovementList(c *fiber.Ctx) error {
	from := parseDateParam(c.Query("from_date"))
	to := parseDateParam(c.Query("to_date"))
	movements, err := h.query.List(c.Query("product_id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	products, err := h.productUC.List("")
	if err != nil {
		return respondError(c, err)
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return render(c, tmplMovements, fiber.Map{
		"Movements":    movements,
		"Products":     products,
		"ProductNames": names,
	})
}

// MovementAddForm GET /movements/add.
func (h *WebHandler) MovementAddForm(c *fiber.Ctx) error {
	products, err := h.productUC.List("")
	if err != nil {
		return respondError(c, err)
	}
	suppliers, err := h.supplierUC.List()
	if err != nil {
		return respondError(c, err)
	}
	return render(c, tmplMovementForm, fiber.Map{"Products": products, "Suppliers": suppliers})
}

// MovementAdd POST /movements/add — mismas reglas que POST /api/movements:
// el libro de movimientos es la única fuente de validación.
func (h *WebHandler) MovementAdd(c *fiber.Ctx) error {
	quantity, err := strconv.ParseInt(c.FormValue("quantity"), 10, 64)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	in := dto.RegisterMovementRequest{
		ProductID:  c.FormValue("product_id"),
		Type:       c.FormValue("type"),
		Quantity:   quantity,
		SupplierID: c.FormValue("supplier_id"),
		Notes:      c.FormValue("notes"),
	}
	if _, err := h.register.RegisterMovement(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.Redirect("/movements", fiber.StatusSeeOther)
}

// formDecimal parsea un campo decimal de formulario; vacío o inválido vale 0,
// como los defaults del formulario original.
func formDecimal(c *fiber.Ctx, key string) decimal.Decimal {
	d, err := decimal.NewFromString(c.FormValue(key))
	if err != nil {
		return decimal.Zero
	}
	return d
}

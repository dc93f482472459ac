package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/bodega-api/internal/application/inventory"
	"github.com/dcastano/bodega-api/internal/application/usecase"
	"github.com/dcastano/bodega-api/internal/domain/entity"
	"github.com/dcastano/bodega-api/internal/domain/repository"
	apphttp "github.com/dcastano/bodega-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: la app completa (router + handlers + casos de uso) corre
// contra estos repos, solo se sustituye PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	movements []*entity.InventoryMovement
	seq       int
}

func (s *store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type productRepo struct {
	st   *store
	inTx bool
}

func (r *productRepo) Create(p *entity.Product) error {
	defer r.st.lock(r.inTx)()
	cp := *p
	r.st.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	defer r.st.lock(r.inTx)()
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	defer r.st.lock(r.inTx)()
	for _, p := range r.st.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) Update(p *entity.Product) error {
	defer r.st.lock(r.inTx)()
	cp := *p
	r.st.products[p.ID] = &cp
	return nil
}

func (r *productRepo) UpdateStock(id string, stock int64) error {
	defer r.st.lock(r.inTx)()
	if p, ok := r.st.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *productRepo) List(q string) ([]*entity.Product, error) {
	defer r.st.lock(r.inTx)()
	q = strings.ToLower(q)
	out := make([]*entity.Product, 0, len(r.st.products))
	for _, p := range r.st.products {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) Delete(id string) error {
	defer r.st.lock(r.inTx)()
	delete(r.st.products, id)
	return nil
}

type supplierRepo struct {
	st *store
}

func (r *supplierRepo) Create(s *entity.Supplier) error {
	defer r.st.lock(false)()
	cp := *s
	r.st.suppliers[s.ID] = &cp
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	defer r.st.lock(false)()
	s, ok := r.st.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *supplierRepo) Update(s *entity.Supplier) error {
	defer r.st.lock(false)()
	cp := *s
	r.st.suppliers[s.ID] = &cp
	return nil
}

func (r *supplierRepo) List() ([]*entity.Supplier, error) {
	defer r.st.lock(false)()
	out := make([]*entity.Supplier, 0, len(r.st.suppliers))
	for _, s := range r.st.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *supplierRepo) Delete(id string) error {
	defer r.st.lock(false)()
	delete(r.st.suppliers, id)
	return nil
}

type movementRepo struct {
	st   *store
	inTx bool
}

func (r *movementRepo) Create(m *entity.InventoryMovement) error {
	defer r.st.lock(r.inTx)()
	if m.ID == "" {
		r.st.seq++
		m.ID = fmt.Sprintf("mov-%04d", r.st.seq)
	}
	cp := *m
	r.st.movements = append(r.st.movements, &cp)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	defer r.st.lock(r.inTx)()
	for _, m := range r.st.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	defer r.st.lock(r.inTx)()
	out := make([]*entity.InventoryMovement, 0, len(r.st.movements))
	for i := len(r.st.movements) - 1; i >= 0; i-- {
		m := r.st.movements[i]
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.From != nil && m.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Date.After(*filter.To) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *movementRepo) CountByProduct(productID string) (int64, error) {
	defer r.st.lock(false)()
	var n int64
	for _, m := range r.st.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

type txRunner struct {
	st *store
}

func (r *txRunner) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	prodRepo repository.ProductRepository,
) error) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	products := make(map[string]*entity.Product, len(r.st.products))
	for id, p := range r.st.products {
		cp := *p
		products[id] = &cp
	}
	movements := make([]*entity.InventoryMovement, len(r.st.movements))
	copy(movements, r.st.movements)

	err := fn(&movementRepo{st: r.st, inTx: true}, &productRepo{st: r.st, inTx: true})
	if err != nil {
		r.st.products = products
		r.st.movements = movements
	}
	return err
}

type stubReportGen struct{}

func (stubReportGen) GenerateMovementsReport(_ context.Context, _ []inventory.MovementReportRow) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

// buildTestApp levanta la app Fiber completa con el router real sobre los
// repos en memoria.
func buildTestApp() (*fiber.App, *store) {
	st := &store{
		products:  make(map[string]*entity.Product),
		suppliers: make(map[string]*entity.Supplier),
	}
	prodRepo := &productRepo{st: st}
	supRepo := &supplierRepo{st: st}
	movRepo := &movementRepo{st: st}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(prodRepo, movRepo),
		SupplierUC:       usecase.NewSupplierUseCase(supRepo),
		RegisterMovement: inventory.NewRegisterMovementUseCase(&txRunner{st: st}, prodRepo, supRepo, true),
		MovementQuery:    inventory.NewMovementQueryUseCase(movRepo, prodRepo, stubReportGen{}),
	})
	return app, st
}

// ── helpers de petición ───────────────────────────────────────────────────────

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createProduct(t *testing.T, app *fiber.App, sku, name string) map[string]any {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products", fiber.Map{
		"sku": sku, "name": name, "cost_price": "1000", "sale_price": "1500",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON — productos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ProductoCicloCompleto(t *testing.T) {
	app, _ := buildTestApp()

	created := createProduct(t, app, "WIDGET001", "Widget")
	id := created["id"].(string)
	assert.Equal(t, float64(0), created["stock"], "el stock inicia en 0")

	resp := doJSON(t, app, http.MethodGet, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	decodeBody(t, resp, &got)
	assert.Equal(t, "WIDGET001", got["sku"])

	resp = doJSON(t, app, http.MethodPut, "/api/products/"+id, fiber.Map{"name": "Widget Pro"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &got)
	assert.Equal(t, "Widget Pro", got["name"])
	assert.Equal(t, "WIDGET001", got["sku"], "actualización parcial: el SKU no cambia")

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ProductoSKUDuplicadoEs400(t *testing.T) {
	app, _ := buildTestApp()
	createProduct(t, app, "WIDGET001", "Widget")

	resp := doJSON(t, app, http.MethodPost, "/api/products", fiber.Map{
		"sku": "WIDGET001", "name": "Otro",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "DUPLICATE_SKU")
}

func TestAPI_ProductoInexistenteEs404(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/products/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestAPI_ProductoConMovimientosNoSeBorra(t *testing.T) {
	app, _ := buildTestApp()
	p := createProduct(t, app, "WIDGET001", "Widget")
	id := p["id"].(string)

	resp := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"product_id": id, "type": "entry", "quantity": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "CONFLICT")
}

func TestAPI_ProductoListadoFiltrado(t *testing.T) {
	app, _ := buildTestApp()
	createProduct(t, app, "TORN-01", "Tornillo 3mm")
	createProduct(t, app, "MART-01", "Martillo")

	resp := doJSON(t, app, http.MethodGet, "/api/products?q=torn", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Tornillo 3mm", list[0]["name"])
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON — movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_MovimientoActualizaStockYLista(t *testing.T) {
	app, _ := buildTestApp()
	p := createProduct(t, app, "WIDGET001", "Widget")
	id := p["id"].(string)

	resp := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"product_id": id, "type": "entry", "quantity": 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var mov map[string]any
	decodeBody(t, resp, &mov)
	assert.Nil(t, mov["supplier_id"], "sin proveedor el campo serializa null")
	assert.NotEmpty(t, mov["date"], "la fecha la asigna el servidor")

	resp = doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"product_id": id, "type": "sale", "quantity": 20,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+id, nil)
	var got map[string]any
	decodeBody(t, resp, &got)
	assert.Equal(t, float64(80), got["stock"], "100 - 20 = 80")

	resp = doJSON(t, app, http.MethodGet, "/api/movements?product_id="+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeBody(t, resp, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "sale", list[0]["type"], "el más reciente primero")
	assert.Equal(t, "entry", list[1]["type"])
}

func TestAPI_MovimientoStockInsuficienteEs400(t *testing.T) {
	app, st := buildTestApp()
	p := createProduct(t, app, "WIDGET001", "Widget")
	id := p["id"].(string)

	resp := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"product_id": id, "type": "sale", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")
	assert.Empty(t, st.movements, "la venta fallida no deja movimiento")
}

func TestAPI_MovimientoTipoInvalidoEs400(t *testing.T) {
	app, _ := buildTestApp()
	p := createProduct(t, app, "WIDGET001", "Widget")

	resp := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"product_id": p["id"], "type": "transfer", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "INVALID_MOVEMENT_TYPE")
}

func TestAPI_MovimientoProductoInexistenteEs404(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"product_id": "no-existe", "type": "entry", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// Una fecha mal formada no es error: el filtro simplemente no se aplica.
func TestAPI_MovimientoFechaMalFormadaSeIgnora(t *testing.T) {
	app, _ := buildTestApp()
	p := createProduct(t, app, "WIDGET001", "Widget")
	id := p["id"].(string)

	resp := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"product_id": id, "type": "entry", "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/movements?from_date=esto-no-es-fecha", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeBody(t, resp, &list)
	assert.Len(t, list, 1)
}

func TestAPI_MovimientoGetByID(t *testing.T) {
	app, _ := buildTestApp()
	p := createProduct(t, app, "WIDGET001", "Widget")

	resp := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"product_id": p["id"], "type": "entry", "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var mov map[string]any
	decodeBody(t, resp, &mov)

	resp = doJSON(t, app, http.MethodGet, "/api/movements/"+mov["id"].(string), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/movements/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_MovimientoReportePDF(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/movements/report", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "movimientos.pdf")
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON — proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ProveedorCicloCompleto(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/suppliers", fiber.Map{
		"name": "Acme Ltda", "contact": "Juana Pérez", "phone": "3001234567",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sup map[string]any
	decodeBody(t, resp, &sup)
	id := sup["id"].(string)

	resp = doJSON(t, app, http.MethodPut, "/api/suppliers/"+id, fiber.Map{"phone": "3009999999"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &sup)
	assert.Equal(t, "3009999999", sup["phone"])
	assert.Equal(t, "Acme Ltda", sup["name"])

	resp = doJSON(t, app, http.MethodDelete, "/api/suppliers/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/suppliers/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Páginas web — formularios con redirect 303
// ──────────────────────────────────────────────────────────────────────────────

func TestWeb_FormularioProductoRedirige303(t *testing.T) {
	app, _ := buildTestApp()

	resp := doForm(t, app, "/products/add", url.Values{
		"sku":        {"WIDGET001"},
		"name":       {"Widget"},
		"cost_price": {"1500.50"},
		"sale_price": {"2000"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	page, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(page.Body)
	page.Body.Close()
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, string(body), "Widget", "el listado debe mostrar el producto creado")
}

func TestWeb_FormularioMovimientoRedirige303(t *testing.T) {
	app, _ := buildTestApp()
	p := createProduct(t, app, "WIDGET001", "Widget")

	resp := doForm(t, app, "/movements/add", url.Values{
		"product_id": {p["id"].(string)},
		"type":       {"entry"},
		"quantity":   {"50"},
		"notes":      {"carga inicial"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/movements", resp.Header.Get("Location"))
	resp.Body.Close()

	api := doJSON(t, app, http.MethodGet, "/api/products/"+p["id"].(string), nil)
	var got map[string]any
	decodeBody(t, api, &got)
	assert.Equal(t, float64(50), got["stock"], "el formulario usa el mismo libro de movimientos")
}

func TestWeb_FormularioMovimientoCantidadInvalida(t *testing.T) {
	app, _ := buildTestApp()
	p := createProduct(t, app, "WIDGET001", "Widget")

	resp := doForm(t, app, "/movements/add", url.Values{
		"product_id": {p["id"].(string)},
		"type":       {"entry"},
		"quantity":   {"no-es-numero"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestWeb_RaizRedirigeAProductos(t *testing.T) {
	app, _ := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))
	resp.Body.Close()
}

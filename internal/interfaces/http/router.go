package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/bodega-api/internal/application/inventory"
	"github.com/dcastano/bodega-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	SupplierUC       *usecase.SupplierUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
}

// Router registra las rutas: API JSON bajo /api y páginas renderizadas en
// servidor en la raíz. Ambas superficies llaman a los mismos casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Movements (append-only: sin PUT ni DELETE)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementQuery)
	movements := api.Group("/movements")
	movements.Post("/", inventoryHandler.RegisterMovement)
	movements.Get("/", inventoryHandler.List)
	// /report antes de /:id para que el router no lo capture como ID
	movements.Get("/report", inventoryHandler.Report)
	movements.Get("/:id", inventoryHandler.GetByID)

	// Páginas web (formularios con redirect 303)
	web := NewWebHandler(deps.ProductUC, deps.SupplierUC, deps.RegisterMovement, deps.MovementQuery)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/products", fiber.StatusSeeOther)
	})
	app.Get("/products", web.ProductList)
	app.Get("/products/add", web.ProductAddForm)
	app.Post("/products/add", web.ProductAdd)
	app.Get("/products/edit/:id", web.ProductEditForm)
	app.Post("/products/edit/:id", web.ProductEdit)
	app.Post("/products/delete/:id", web.ProductDelete)
	app.Get("/suppliers", web.SupplierList)
	app.Get("/suppliers/add", web.SupplierAddForm)
	app.Post("/suppliers/add", web.SupplierAdd)
	app.Get("/movements", web.MovementList)
	app.Get("/movements/add", web.MovementAddForm)
	app.Post("/movements/add", web.MovementAdd)
}

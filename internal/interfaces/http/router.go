package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/heleta-pos/internal/application/analytics"
	"github.com/jhoicas/heleta-pos/internal/application/inventory"
	"github.com/jhoicas/heleta-pos/internal/application/sales"
	"github.com/jhoicas/heleta-pos/internal/application/usecase"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	RecordSale       *sales.RecordSaleUseCase
	SaleQuery        *sales.QueryUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	SalesReport      *appanalytics.SalesReportUseCase
	JWTSecret        string
	Logger           *logger.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products: lectura para todos, escritura solo admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Inventory movements: entradas/salidas manuales para admin y bodeguero
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementQuery, log)
	invGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", anyRole, inventoryHandler.ListMovements)

	// Sales: registro para admin y vendedor
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.RecordSale, deps.SaleQuery, log)
	salesGroup.Post("/", RequireRole(entity.RoleAdmin, entity.RoleVendedor), saleHandler.Create)
	salesGroup.Get("/", anyRole, saleHandler.List)
	salesGroup.Get("/:id", anyRole, saleHandler.GetByID)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.SalesReport, log)
	api.Get("/dashboard", anyRole, dashboardHandler.GetSummary)
	api.Get("/reports/sales", anyRole, dashboardHandler.SalesReport)
}

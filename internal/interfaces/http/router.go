package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/logistica-api/internal/application/auth"
	"github.com/jhoicas/logistica-api/internal/application/balancing"
	"github.com/jhoicas/logistica-api/internal/application/catalog"
	"github.com/jhoicas/logistica-api/internal/application/planning"
	"github.com/jhoicas/logistica-api/internal/application/stock"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CalculateUC   *planning.CalculateUseCase
	ProposeUC     *planning.ProposeShipmentsUseCase
	CommitUC      *planning.CommitShipmentsUseCase
	RequirementUC *planning.RequirementActionsUseCase
	ShipmentUC    *planning.ShipmentActionsUseCase
	StockUC       *stock.UseCase
	CatalogUC     *catalog.UseCase
	BalancingUC   *balancing.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Las mutaciones quedan restringidas a admin y regulador; los analistas
	// tienen acceso de solo lectura.
	mutating := RequireRole(entity.RoleAdmin, entity.RoleRegulador)

	// Planificación (protegido)
	planningGroup := protected.Group("/planning")
	planningHandler := NewPlanningHandler(deps.CalculateUC, deps.ProposeUC, deps.CommitUC)
	planningGroup.Post("/requirements/calculate", mutating, planningHandler.Calculate)
	planningGroup.Get("/requirements", planningHandler.ListRequirements)
	planningGroup.Post("/shipments/propose", planningHandler.ProposeShipments)
	planningGroup.Post("/shipments/commit", mutating, planningHandler.CommitShipments)

	// Necesidades (protegido)
	requirements := protected.Group("/requirements")
	requirementHandler := NewRequirementHandler(deps.RequirementUC)
	requirements.Post("/:id/order", mutating, requirementHandler.MarkAsOrdered)
	requirements.Post("/:id/receive", mutating, requirementHandler.ReceivePO)
	requirements.Delete("/:id", mutating, requirementHandler.Delete)

	// Envíos (protegido)
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Get("/", shipmentHandler.List)
	shipments.Post("/:id/confirm", mutating, shipmentHandler.Confirm)
	shipments.Delete("/:id", mutating, shipmentHandler.Delete)

	// Stock, movimientos y alertas (protegido)
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup := protected.Group("/stock")
	stockGroup.Get("/regulator", stockHandler.ListRegulator)
	stockGroup.Put("/regulator", mutating, stockHandler.UpsertRegulator)
	stockGroup.Get("/panelists", stockHandler.ListPanelists)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/alerts", stockHandler.ListAlerts)

	// Catálogo de materiales (protegido)
	materialHandler := NewMaterialHandler(deps.CatalogUC)
	protected.Get("/materials", materialHandler.List)

	// Balanceo de carga (protegido)
	balancingHandler := NewBalancingHandler(deps.BalancingUC)
	protected.Get("/balancing/preview", balancingHandler.Preview)
}

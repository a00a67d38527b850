package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/comisiones-api/internal/application/analytics"
	"github.com/jhoicas/comisiones-api/internal/application/auth"
	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/entitlement"
	"github.com/jhoicas/comisiones-api/internal/application/sales"
	"github.com/jhoicas/comisiones-api/internal/application/salesrep"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/application/usecase"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Modules     *usecase.ModuleService
	Tenants     *usecase.TenantUseCase
	Account     *usecase.TenantAccountUseCase
	Ledger      *sales.Ledger
	SalesReps   *salesrep.Service
	DashboardUC *appanalytics.DashboardUseCase
	Resolver    *tenancy.Resolver
	Guard       *entitlement.Guard
	JWTSecret   string
	ServiceName string
	StorageName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName, Storage: deps.StorageName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Catálogo de módulos (público)
	moduleHandler := NewModuleHandler(deps.Modules)
	api.Get("/modules", moduleHandler.List)

	// Rutas protegidas (requieren Bearer Token)
	authn := AuthMiddleware(deps.JWTSecret, deps.Resolver)
	tenantAdmin := RequireAccess(deps.Guard, entity.ModuleCommissionsCore, entity.RoleTenantAdmin)
	salesRep := RequireAccess(deps.Guard, entity.ModuleCommissionsCore, entity.RoleSalesRep)
	superAdmin := RequireAccess(deps.Guard, "", entity.RoleSuperAdmin)
	// Solo rol: una empresa sin módulos también debe poder consultar los suyos.
	ownTenant := RequireAccess(deps.Guard, "", entity.RoleTenantAdmin)

	// Los middlewares van por ruta y no por grupo: Group.Use compara por prefijo
	// y /api/sales también cubriría /api/sales-reps.
	asAdmin := func(h fiber.Handler) []fiber.Handler { return []fiber.Handler{authn, tenantAdmin, h} }
	asRep := func(h fiber.Handler) []fiber.Handler { return []fiber.Handler{authn, salesRep, h} }
	asSuper := func(h fiber.Handler) []fiber.Handler { return []fiber.Handler{authn, superAdmin, h} }
	asOwner := func(h fiber.Handler) []fiber.Handler { return []fiber.Handler{authn, ownTenant, h} }

	// Ventas (TENANT_ADMIN + COMMISSIONS_CORE)
	saleHandler := NewSaleHandler(deps.Ledger)
	api.Post("/sales", asAdmin(saleHandler.Create)...)
	api.Get("/sales", asAdmin(saleHandler.List)...)
	api.Put("/sales/:id", asAdmin(saleHandler.Update)...)
	api.Post("/sales/:id/approve", asAdmin(saleHandler.Approve)...)
	api.Post("/sales/:id/cancel", asAdmin(saleHandler.Cancel)...)

	// Autoservicio del vendedor (SALES_REP + COMMISSIONS_CORE)
	api.Post("/self-service/sales", asRep(saleHandler.CreateSelf)...)
	api.Get("/self-service/sales", asRep(saleHandler.ListSelf)...)

	// Vendedores (TENANT_ADMIN + COMMISSIONS_CORE)
	repHandler := NewSalesRepHandler(deps.SalesReps)
	api.Post("/sales-reps", asAdmin(repHandler.Create)...)
	api.Get("/sales-reps", asAdmin(repHandler.List)...)
	api.Get("/sales-reps/:id", asAdmin(repHandler.GetByID)...)
	api.Put("/sales-reps/:id", asAdmin(repHandler.Update)...)
	api.Get("/sales-reps/:id/details", asAdmin(repHandler.Details)...)

	// Dashboard (TENANT_ADMIN + COMMISSIONS_CORE)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", asAdmin(dashboardHandler.Get)...)

	// Mi empresa (TENANT_ADMIN)
	accountHandler := NewTenantAccountHandler(deps.Account)
	api.Get("/tenant/modules", asOwner(accountHandler.Modules)...)
	api.Get("/tenant/me", asOwner(accountHandler.Profile)...)
	api.Post("/tenant/admins", asOwner(accountHandler.CreateAdmin)...)

	// Administración de la plataforma (SUPER_ADMIN)
	tenantHandler := NewTenantHandler(deps.Tenants)
	api.Post("/admin/tenants", asSuper(tenantHandler.Create)...)
	api.Put("/admin/tenants/:id/modules", asSuper(tenantHandler.ReplaceModules)...)
}

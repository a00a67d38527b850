package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/comisiones-api/internal/application/analytics"
	"github.com/jhoicas/comisiones-api/internal/application/auth"
	"github.com/jhoicas/comisiones-api/internal/application/entitlement"
	"github.com/jhoicas/comisiones-api/internal/application/sales"
	"github.com/jhoicas/comisiones-api/internal/application/salesrep"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/application/usecase"
	httpRouter "github.com/jhoicas/comisiones-api/internal/interfaces/http"
	"github.com/jhoicas/comisiones-api/pkg/clock"
	"github.com/jhoicas/comisiones-api/pkg/config"
	"github.com/jhoicas/comisiones-api/pkg/logger"
	"github.com/jhoicas/comisiones-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Str("timezone", cfg.App.Location().String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	clk := clock.System{}
	loc := cfg.App.Location()
	guard := entitlement.NewGuard(store.tenants)

	authUC := auth.NewAuthUseCase(store.principals, guard, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, clk, log)

	if cfg.Bootstrap.Enabled() {
		created, err := authUC.BootstrapSuperAdmin(ctx, auth.BootstrapInput{
			Email:    cfg.Bootstrap.AdminEmail,
			Password: cfg.Bootstrap.AdminPassword,
			Name:     cfg.Bootstrap.AdminName,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear super admin inicial")
		}
		if !created {
			log.Info().Str("email", cfg.Bootstrap.AdminEmail).Msg("super admin ya existe")
		}
	}

	ledger := sales.NewLedger(store.tx, store.reps, store.sales, clk, log)
	repSvc := salesrep.NewService(store.tx, store.reps, store.dashboard, loc, clk, log)
	dashboardUC := appanalytics.NewDashboardUseCase(store.dashboard, loc, cfg.Dashboard.TopN, clk)
	moduleSvc := usecase.NewModuleService(store.modules)
	tenantUC := usecase.NewTenantUseCase(store.tx, store.tenants, store.modules, clk, log)
	accountUC := usecase.NewTenantAccountUseCase(store.tenants, store.principals, guard, clk, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	httpMetrics := metrics.NewHTTPMetrics(cfg.App.Name)
	app.Use(httpMetrics.Middleware())
	app.Use(httpRouter.RequestLogger(log))
	app.Get("/metrics", httpMetrics.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comisiones API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Modules:     moduleSvc,
		Tenants:     tenantUC,
		Account:     accountUC,
		Ledger:      ledger,
		SalesReps:   repSvc,
		DashboardUC: dashboardUC,
		Resolver:    tenancy.NewResolver(store.principals),
		Guard:       guard,
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		StorageName: cfg.DB.Driver,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

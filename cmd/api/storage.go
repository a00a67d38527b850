package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/memory"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/comisiones-api/pkg/config"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

// storage puertos de persistencia del driver elegido con STORAGE_DRIVER.
type storage struct {
	tx         repository.TxRunner
	tenants    repository.TenantRepository
	modules    repository.ModuleRepository
	principals repository.PrincipalRepository
	reps       repository.SalesRepRepository
	sales      repository.SaleRepository
	dashboard  repository.DashboardRepository
	close      func()
}

func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			tx:         s,
			tenants:    memory.NewTenantRepository(s),
			modules:    memory.NewModuleRepository(s),
			principals: memory.NewPrincipalRepository(s),
			reps:       memory.NewSalesRepRepository(s),
			sales:      memory.NewSaleRepository(s),
			dashboard:  memory.NewDashboardRepository(s),
			close:      func() {},
		}, nil
	case "postgres", "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.Migrate {
			if err := postgres.RunMigrations(pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &storage{
			tx:         postgres.NewTxRunner(pool),
			tenants:    postgres.NewTenantRepository(pool),
			modules:    postgres.NewModuleRepository(pool),
			principals: postgres.NewPrincipalRepository(pool),
			reps:       postgres.NewSalesRepRepository(pool),
			sales:      postgres.NewSaleRepository(pool),
			dashboard:  postgres.NewDashboardRepository(pool),
			close:      pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Driver)
	}
}

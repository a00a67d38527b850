package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// SalesRepRepository define el puerto de persistencia para vendedores.
// Todas las lecturas devuelven (nil, nil) cuando no hay resultado para esa empresa.
type SalesRepRepository interface {
	Create(ctx context.Context, rep *entity.SalesRep) error
	GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.SalesRep, error)
	GetByPrincipalID(ctx context.Context, principalID string) (*entity.SalesRep, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.SalesRep, error)
	UpdatePercentage(ctx context.Context, tenantID, id string, percentage decimal.Decimal) error
}

package repository

import (
	"context"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas. Toda operación está
// acotada a una empresa: una venta de otra empresa es indistinguible de una inexistente.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByTenantAndID devuelve (nil, nil) si la venta no existe para esa empresa.
	GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	// GetForUpdate igual que GetByTenantAndID pero bloquea la fila dentro de la transacción.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Sale, error)
	ListByRep(ctx context.Context, repID string) ([]*entity.Sale, error)
	// UpdateAmount persiste monto, comisión y descripción.
	UpdateAmount(ctx context.Context, sale *entity.Sale) error
	// CompareAndSetStatus cambia el estado solo si el actual está en from.
	// Devuelve false (sin error) si ninguna fila cumplió la condición.
	CompareAndSetStatus(ctx context.Context, tenantID, id string, from []entity.SaleStatus, to entity.SaleStatus) (bool, error)
}

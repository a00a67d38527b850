package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria. Las lecturas siempre filtran por empresa.
type SaleRepo struct {
	s    *Store
	inTx bool
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.s.writeLock(r.inTx)()
	rep, ok := r.s.reps[sale.SalesRepID]
	if !ok || rep.TenantID != sale.TenantID {
		return fmt.Errorf("insert sale: vendedor %s: %w", sale.SalesRepID, domain.ErrInvalidInput)
	}
	stored := *sale
	stored.RepName = ""
	r.s.sales[sale.ID] = stored
	return nil
}

func (r *SaleRepo) GetByTenantAndID(_ context.Context, tenantID, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.sales[id]
	if !ok || sale.TenantID != tenantID {
		return nil, nil
	}
	return r.s.resolveSale(sale), nil
}

// GetForUpdate en memoria no hay bloqueo de fila; la atomicidad la da CompareAndSetStatus.
func (r *SaleRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	return r.GetByTenantAndID(ctx, tenantID, id)
}

func (r *SaleRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Sale, error) {
	return r.list(func(s entity.Sale) bool { return s.TenantID == tenantID }), nil
}

func (r *SaleRepo) ListByRep(_ context.Context, repID string) ([]*entity.Sale, error) {
	return r.list(func(s entity.Sale) bool { return s.SalesRepID == repID }), nil
}

func (r *SaleRepo) UpdateAmount(_ context.Context, sale *entity.Sale) error {
	defer r.s.writeLock(r.inTx)()
	stored, ok := r.s.sales[sale.ID]
	if !ok || stored.TenantID != sale.TenantID {
		return domain.ErrNotFound
	}
	stored.Amount = sale.Amount
	stored.Commission = sale.Commission
	stored.Description = sale.Description
	r.s.sales[sale.ID] = stored
	return nil
}

func (r *SaleRepo) CompareAndSetStatus(_ context.Context, tenantID, id string, from []entity.SaleStatus, to entity.SaleStatus) (bool, error) {
	defer r.s.writeLock(r.inTx)()
	stored, ok := r.s.sales[id]
	if !ok || stored.TenantID != tenantID {
		return false, nil
	}
	if !slices.Contains(from, stored.Status) {
		return false, nil
	}
	stored.Status = to
	r.s.sales[id] = stored
	return true, nil
}

// list devuelve las ventas que cumplen keep, de la más reciente a la más antigua.
func (r *SaleRepo) list(keep func(entity.Sale) bool) []*entity.Sale {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Sale{}
	for _, sale := range r.s.sales {
		if keep(sale) {
			out = append(out, r.s.resolveSale(sale))
		}
	}
	sortBy(out, newestFirst)
	return out
}

// resolveSale copia la venta y completa el nombre del vendedor. Requiere s.mu tomado.
func (s *Store) resolveSale(sale entity.Sale) *entity.Sale {
	out := sale
	out.RepName = s.repName(sale.SalesRepID)
	return &out
}

func newestFirst(a, b *entity.Sale) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

// sortBy ordena de forma estable con la función less.
func sortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

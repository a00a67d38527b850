package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.SalesRepRepository = (*SalesRepRepo)(nil)

// SalesRepRepo vendedores en memoria. Nombre y email se resuelven desde el Principal.
type SalesRepRepo struct {
	s    *Store
	inTx bool
}

// NewSalesRepRepository construye el adaptador.
func NewSalesRepRepository(s *Store) *SalesRepRepo {
	return &SalesRepRepo{s: s}
}

func (r *SalesRepRepo) Create(_ context.Context, rep *entity.SalesRep) error {
	defer r.s.writeLock(r.inTx)()
	p, ok := r.s.principals[rep.PrincipalID]
	if !ok {
		return fmt.Errorf("insert sales rep: principal %s inexistente", rep.PrincipalID)
	}
	if p.TenantID != rep.TenantID {
		return fmt.Errorf("insert sales rep: %w", domain.ErrInvalidInput)
	}
	for _, existing := range r.s.reps {
		if existing.PrincipalID == rep.PrincipalID {
			return fmt.Errorf("insert sales rep: %w", domain.ErrConflict)
		}
	}
	stored := *rep
	stored.CommissionPercentage = copyDecimal(rep.CommissionPercentage)
	stored.Name, stored.Email = "", ""
	r.s.reps[rep.ID] = stored
	return nil
}

func (r *SalesRepRepo) GetByTenantAndID(_ context.Context, tenantID, id string) (*entity.SalesRep, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rep, ok := r.s.reps[id]
	if !ok || rep.TenantID != tenantID {
		return nil, nil
	}
	return r.resolve(rep), nil
}

func (r *SalesRepRepo) GetByPrincipalID(_ context.Context, principalID string) (*entity.SalesRep, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rep := range r.s.reps {
		if rep.PrincipalID == principalID {
			return r.resolve(rep), nil
		}
	}
	return nil, nil
}

func (r *SalesRepRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.SalesRep, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.SalesRep{}
	for _, rep := range r.s.reps {
		if rep.TenantID == tenantID {
			out = append(out, r.resolve(rep))
		}
	}
	sortBy(out, func(a, b *entity.SalesRep) bool { return a.Name < b.Name })
	return out, nil
}

func (r *SalesRepRepo) UpdatePercentage(_ context.Context, tenantID, id string, percentage decimal.Decimal) error {
	defer r.s.writeLock(r.inTx)()
	rep, ok := r.s.reps[id]
	if !ok || rep.TenantID != tenantID {
		return domain.ErrNotFound
	}
	rep.CommissionPercentage = &percentage
	r.s.reps[id] = rep
	return nil
}

// resolve copia el vendedor y completa nombre y email. Requiere s.mu tomado.
func (r *SalesRepRepo) resolve(rep entity.SalesRep) *entity.SalesRep {
	out := rep
	out.CommissionPercentage = copyDecimal(rep.CommissionPercentage)
	p := r.s.principals[rep.PrincipalID]
	out.Name = p.Name
	out.Email = p.Email
	return &out
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

package memory

import (
	"context"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.PrincipalRepository = (*PrincipalRepo)(nil)

// PrincipalRepo identidades de login en memoria. El email es único.
type PrincipalRepo struct {
	s    *Store
	inTx bool
}

// NewPrincipalRepository construye el adaptador.
func NewPrincipalRepository(s *Store) *PrincipalRepo {
	return &PrincipalRepo{s: s}
}

func (r *PrincipalRepo) Create(_ context.Context, p *entity.Principal) error {
	defer r.s.writeLock(r.inTx)()
	for _, existing := range r.s.principals {
		if existing.Email == p.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.principals[p.ID] = *p
	return nil
}

func (r *PrincipalRepo) GetByEmail(_ context.Context, email string) (*entity.Principal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.principals {
		if p.Email == email {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PrincipalRepo) CountByTenantAndRole(_ context.Context, tenantID string, role entity.Role) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.principals {
		if p.TenantID == tenantID && p.Role == role {
			n++
		}
	}
	return n, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.PrincipalRepository = (*PrincipalRepo)(nil)

// PrincipalRepo identidades de login sobre PostgreSQL.
type PrincipalRepo struct {
	q Querier
}

// NewPrincipalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPrincipalRepository(q Querier) *PrincipalRepo {
	return &PrincipalRepo{q: q}
}

// Create persiste el principal. Un email repetido devuelve domain.ErrEmailAlreadyExists.
func (r *PrincipalRepo) Create(ctx context.Context, p *entity.Principal) error {
	query := `
		INSERT INTO principals (id, tenant_id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, nullable(p.TenantID), p.Name, p.Email, p.PasswordHash, string(p.Role), p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert principal: %w", err)
	}
	return nil
}

// GetByEmail devuelve (nil, nil) si no existe.
func (r *PrincipalRepo) GetByEmail(ctx context.Context, email string) (*entity.Principal, error) {
	query := `
		SELECT id, COALESCE(tenant_id::text, ''), name, email, password_hash, role, created_at
		FROM principals WHERE email = $1`
	var p entity.Principal
	err := r.q.QueryRow(ctx, query, email).Scan(&p.ID, &p.TenantID, &p.Name, &p.Email, &p.PasswordHash, &p.Role, &p.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get principal by email: %w", err)
	}
	return &p, nil
}

// CountByTenantAndRole cuenta las identidades de la empresa con ese rol.
func (r *PrincipalRepo) CountByTenantAndRole(ctx context.Context, tenantID string, role entity.Role) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM principals WHERE tenant_id = $1 AND role = $2`,
		tenantID, string(role)).Scan(&n)
	if err != nil {
		return 0, wrapErr("count principals", err)
	}
	return n, nil
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/comisiones-api/internal/domain/authz"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

func TestDecide(t *testing.T) {
	adminCore := authz.Requirement{
		Roles:  []entity.Role{entity.RoleTenantAdmin},
		Module: entity.ModuleCommissionsCore,
	}
	withCore := entity.NewModuleSet(entity.ModuleCommissionsCore)

	cases := []struct {
		name    string
		role    entity.Role
		modules entity.ModuleSet
		req     authz.Requirement
		want    authz.Decision
	}{
		{"admin con módulo", entity.RoleTenantAdmin, withCore, adminCore, authz.Allow},
		{"admin sin módulos", entity.RoleTenantAdmin, nil, adminCore, authz.Deny},
		{"vendedor con módulo en ruta admin", entity.RoleSalesRep, withCore, adminCore, authz.Deny},
		{"rol desconocido", entity.Role("ROLE_ROOT"), withCore, authz.Requirement{}, authz.Deny},
		{"solo rol, sin módulo", entity.RoleSuperAdmin, nil,
			authz.Requirement{Roles: []entity.Role{entity.RoleSuperAdmin}}, authz.Allow},
		{"módulo con otra capitalización", entity.RoleTenantAdmin,
			entity.NewModuleSet("commissions_core"), adminCore, authz.Deny},
		{"varios roles permitidos", entity.RoleSalesRep, withCore, authz.Requirement{
			Roles:  []entity.Role{entity.RoleTenantAdmin, entity.RoleSalesRep},
			Module: entity.ModuleCommissionsCore,
		}, authz.Allow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authz.Decide(tc.role, tc.modules, tc.req))
		})
	}
}

// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORAGE_DRIVER=memory (desarrollo) y en los tests de la capa de aplicación.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

// SeedModuleID ID fijo del módulo COMMISSIONS_CORE sembrado por NewStore.
const SeedModuleID = "00000000-0000-0000-0000-00000000c0de"

// Store estado compartido por todos los repositorios en memoria.
// mu protege los mapas. txMu serializa las transacciones de TxRunner y también las
// escrituras hechas fuera de una transacción, de modo que un rollback solo descarta
// lo que escribió la propia transacción.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	modules       map[string]entity.Module
	tenants       map[string]entity.Tenant
	tenantModules map[string]map[string]struct{} // tenantID -> moduleIDs
	principals    map[string]entity.Principal
	reps          map[string]entity.SalesRep
	sales         map[string]entity.Sale
}

// NewStore crea un store vacío con el módulo COMMISSIONS_CORE sembrado (igual que la migración inicial).
func NewStore() *Store {
	s := &Store{
		modules:       map[string]entity.Module{},
		tenants:       map[string]entity.Tenant{},
		tenantModules: map[string]map[string]struct{}{},
		principals:    map[string]entity.Principal{},
		reps:          map[string]entity.SalesRep{},
		sales:         map[string]entity.Sale{},
	}
	s.SeedModule(&entity.Module{
		ID:           SeedModuleID,
		Name:         "Comisiones",
		Key:          entity.ModuleCommissionsCore,
		Status:       entity.ModuleStatusReadyForProduction,
		Description:  "Ventas, vendedores y cálculo de comisiones",
		MonthlyPrice: decimal.RequireFromString("99.90"),
		IsDefault:    true,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	return s
}

// SeedModule agrega o reemplaza un módulo del catálogo.
func (s *Store) SeedModule(m *entity.Module) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules[m.ID] = *m
}

// Repos devuelve los repositorios de escritura atados a este store, fuera de transacción.
func (s *Store) Repos() repository.TxRepos {
	return repository.TxRepos{
		Tenants:    NewTenantRepository(s),
		Principals: NewPrincipalRepository(s),
		SalesReps:  NewSalesRepRepository(s),
		Sales:      NewSaleRepository(s),
	}
}

// txRepos repositorios usados dentro de Run; no toman txMu porque Run ya lo tiene.
func (s *Store) txRepos() repository.TxRepos {
	return repository.TxRepos{
		Tenants:    &TenantRepo{s: s, inTx: true},
		Principals: &PrincipalRepo{s: s, inTx: true},
		SalesReps:  &SalesRepRepo{s: s, inTx: true},
		Sales:      &SaleRepo{s: s, inTx: true},
	}
}

// writeLock toma el candado de escritura y devuelve la función que lo libera.
// Fuera de una transacción espera a que termine la transacción en curso.
func (s *Store) writeLock(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// Run ejecuta fn de forma serializada respecto de otras transacciones y
// restaura el estado previo si fn devuelve error.
func (s *Store) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s.txRepos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

var _ repository.TxRunner = (*Store)(nil)

type snapshot struct {
	tenants       map[string]entity.Tenant
	tenantModules map[string]map[string]struct{}
	principals    map[string]entity.Principal
	reps          map[string]entity.SalesRep
	sales         map[string]entity.Sale
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		tenants:       copyMap(s.tenants),
		tenantModules: make(map[string]map[string]struct{}, len(s.tenantModules)),
		principals:    copyMap(s.principals),
		reps:          copyMap(s.reps),
		sales:         copyMap(s.sales),
	}
	for k, v := range s.tenantModules {
		snap.tenantModules[k] = copyMap(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = snap.tenants
	s.tenantModules = snap.tenantModules
	s.principals = snap.principals
	s.reps = snap.reps
	s.sales = snap.sales
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// repName resuelve el nombre del vendedor desde su Principal. Requiere s.mu tomado.
func (s *Store) repName(repID string) string {
	rep, ok := s.reps[repID]
	if !ok {
		return ""
	}
	return s.principals[rep.PrincipalID].Name
}

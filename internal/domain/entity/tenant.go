package entity

import (
	"sort"
	"time"
)

// Tenant representa una empresa cliente: la unidad de aislamiento de datos.
// Se carga siempre junto con su conjunto de módulos activos (ver TenantRepository.GetWithModules).
type Tenant struct {
	ID        string
	Name      string
	LegalName string
	CreatedAt time.Time
	Modules   ModuleSet
}

// HasModule informa si la empresa tiene el módulo activo.
func (t *Tenant) HasModule(key ModuleKey) bool {
	if t == nil {
		return false
	}
	return t.Modules.Has(key)
}

// ModuleSet conjunto de claves de módulo activas de una empresa (sin orden, sin duplicados).
type ModuleSet map[ModuleKey]struct{}

// NewModuleSet construye el conjunto a partir de una lista de claves.
func NewModuleSet(keys ...ModuleKey) ModuleSet {
	s := make(ModuleSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has compara la clave de forma exacta (sensible a mayúsculas). Un conjunto nil no contiene nada.
func (s ModuleSet) Has(key ModuleKey) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[key]
	return ok
}

// Keys devuelve las claves ordenadas alfabéticamente.
func (s ModuleSet) Keys() []ModuleKey {
	keys := make([]ModuleKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

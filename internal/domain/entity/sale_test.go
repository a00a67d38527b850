package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.SaleStatusPending, entity.SaleStatusConfirmed))
	assert.True(t, entity.CanTransition(entity.SaleStatusPending, entity.SaleStatusCancelled))
	assert.True(t, entity.CanTransition(entity.SaleStatusConfirmed, entity.SaleStatusCancelled))

	assert.False(t, entity.CanTransition(entity.SaleStatusConfirmed, entity.SaleStatusPending))
	assert.False(t, entity.CanTransition(entity.SaleStatusConfirmed, entity.SaleStatusConfirmed))
	assert.False(t, entity.CanTransition(entity.SaleStatusCancelled, entity.SaleStatusConfirmed))
	assert.False(t, entity.CanTransition(entity.SaleStatusCancelled, entity.SaleStatusPending))
	assert.False(t, entity.CanTransition(entity.SaleStatusCancelled, entity.SaleStatusCancelled))
}

func TestSourcesFor(t *testing.T) {
	assert.Equal(t, []entity.SaleStatus{entity.SaleStatusPending}, entity.SourcesFor(entity.SaleStatusConfirmed))
	assert.Equal(t,
		[]entity.SaleStatus{entity.SaleStatusPending, entity.SaleStatusConfirmed},
		entity.SourcesFor(entity.SaleStatusCancelled))
	assert.Empty(t, entity.SourcesFor(entity.SaleStatusPending))
}

func TestModuleSet(t *testing.T) {
	var empty entity.ModuleSet
	assert.False(t, empty.Has("X"))

	s := entity.NewModuleSet("Y", "X")
	assert.True(t, s.Has("X"))
	assert.False(t, s.Has("Z"))
	assert.Equal(t, []entity.ModuleKey{"X", "Y"}, s.Keys())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@acme.com", entity.NormalizeEmail("  Ana@ACME.com "))
	assert.Equal(t, "", entity.NormalizeEmail("   "))
}

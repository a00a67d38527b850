package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrUnauthenticated        = errors.New("no autenticado")
	ErrUnauthorized           = errors.New("credenciales inválidas")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrNoTenant               = errors.New("el usuario no pertenece a ninguna empresa")
)

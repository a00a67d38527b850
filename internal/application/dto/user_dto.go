package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token firmado y claves de los módulos activos de la empresa del usuario
// (vacío para el super admin). El frontend decide qué pantallas mostrar con moduleKeys.
type LoginResponse struct {
	Token      string   `json:"token"`
	ModuleKeys []string `json:"moduleKeys"`
}

// PrincipalResponse salida de una identidad de login (sin password).
type PrincipalResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

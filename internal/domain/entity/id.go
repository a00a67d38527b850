package entity

import "github.com/google/uuid"

// IsValidID indica si id es un UUID en forma canónica (36 caracteres), el formato de
// todas las claves primarias. Un id con otro formato no puede existir en ningún almacenamiento.
func IsValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

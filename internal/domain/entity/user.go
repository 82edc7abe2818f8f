package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// User representa un cliente de la tienda.
// ResetToken y ResetTokenExpiry van siempre juntos: ambos nil o ambos con valor.
type User struct {
	ID               string
	Name             string
	Email            string // siempre en minúsculas
	PasswordHash     string // bcrypt hash, nunca plano
	Permissions      []Permission
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NormalizeEmail recorta espacios y pasa el email a minúsculas antes de guardar o buscar.
func NormalizeEmail(email string) string {
	// cases.Caser guarda estado: uno nuevo por llamada.
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong bcrypt solo admite hasta 72 bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// DefaultCost factor de trabajo de bcrypt usado en producción.
const DefaultCost = 10

// Bcrypt hashea y verifica contraseñas con bcrypt (sal incluida en el digest).
type Bcrypt struct {
	cost int
}

// NewBcrypt construye el hasher; cost fuera de rango usa DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash devuelve el digest de plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify indica si plaintext corresponde a digest.
func (b *Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

package ports

// PasswordHasher hashea y verifica contraseñas. La implementación de producción es pkg/hash.Bcrypt.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

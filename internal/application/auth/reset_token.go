package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	resetTokenBytes = 20
	// ResetTokenTTL vigencia del token de recuperación.
	ResetTokenTTL = time.Hour
)

// GenerateResetToken devuelve 40 caracteres hex de crypto/rand y su expiración (now + 1h).
func GenerateResetToken(now time.Time) (string, time.Time, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("generar reset token: %w", err)
	}
	return hex.EncodeToString(buf), now.Add(ResetTokenTTL), nil
}

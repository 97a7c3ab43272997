package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// ResetToken is a one-time password-recovery code. Plain is handed to the
// user exactly once (by mail); only Hash and ExpiresAt are ever persisted.
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

// GenerateResetToken draws a uniform 6-digit code and digests it for storage.
func GenerateResetToken(ttl time.Duration) (*ResetToken, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return nil, fmt.Errorf("failed to draw reset code: %w", err)
	}
	code := fmt.Sprintf("%d", n.Int64()+100000)

	return &ResetToken{
		Plain:     code,
		Hash:      HashResetCode(code),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// HashResetCode returns the hex SHA-256 digest of a reset code. The code is
// short-lived and single-use, so a fast digest is enough here; bcrypt stays
// reserved for passwords.
func HashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

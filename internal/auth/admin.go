package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/rajasatyajit/FloodAlert/config"
)

// AdminVerifier checks the X-Admin-Secret header of operator routes. A
// bcrypt hash takes precedence over a plain secret.
type AdminVerifier struct {
	hash  []byte
	plain []byte
}

func NewAdminVerifier(cfg config.AdminConfig) *AdminVerifier {
	v := &AdminVerifier{}
	if cfg.AdminSecretHash != "" {
		v.hash = []byte(cfg.AdminSecretHash)
	} else if cfg.AdminSecret != "" {
		v.plain = []byte(cfg.AdminSecret)
	}
	return v
}

// Configured reports whether any secret is set. Operator routes are closed
// when it is not.
func (v *AdminVerifier) Configured() bool {
	return len(v.hash) > 0 || len(v.plain) > 0
}

func (v *AdminVerifier) Verify(secret string) bool {
	if secret == "" {
		return false
	}
	if len(v.hash) > 0 {
		return bcrypt.CompareHashAndPassword(v.hash, []byte(secret)) == nil
	}
	if len(v.plain) > 0 {
		return subtle.ConstantTimeCompare(v.plain, []byte(secret)) == 1
	}
	return false
}

// HashSecret returns the bcrypt hash to put in ADMIN_SECRET_HASH.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

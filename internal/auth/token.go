// Package auth issues subscriber tokens and checks the operator secret.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/rajasatyajit/FloodAlert/config"
	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/models"
)

// Claims is the payload of a subscriber token. The subject is the user ID.
type Claims struct {
	Email string `json:"email"`
	City  string `json:"city"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 subscriber tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	clock  clockwork.Clock
}

func NewIssuer(cfg config.AuthConfig, clock clockwork.Clock) *Issuer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Issuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
		clock:  clock,
	}
}

// Issue returns a signed token for u and its expiry.
func (i *Issuer) Issue(u models.User) (string, time.Time, error) {
	now := i.clock.Now().UTC()
	exp := now.Add(i.ttl)
	claims := &Claims{
		Email: u.Email,
		City:  u.City,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses token and returns the principal it names. Every failure
// wraps apperrors.ErrUnauthorized.
func (i *Issuer) Verify(token string) (*Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}
	return &Principal{UserID: claims.Subject, Email: claims.Email, City: claims.City}, nil
}

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/types"
)

const defaultTTL = 24 * time.Hour

// TokenSource issues and verifies signed session tokens. Tokens are HS256
// JWTs binding a user ID with a bounded lifetime.
type TokenSource struct {
	secret types.SessionSecret
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*TokenSource)

func WithTTL(ttl time.Duration) Option {
	return func(x *TokenSource) {
		x.ttl = ttl
	}
}

// WithNow replaces the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(x *TokenSource) {
		x.now = now
	}
}

func New(secret types.SessionSecret, options ...Option) (*TokenSource, error) {
	if secret == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "session secret is empty")
	}

	ts := &TokenSource{
		secret: secret,
		ttl:    defaultTTL,
		now:    time.Now,
	}
	for _, opt := range options {
		opt(ts)
	}

	return ts, nil
}

func (x *TokenSource) Issue(userID types.UserID) (string, error) {
	now := x.now()
	claims := jwt.RegisteredClaims{
		Subject:   string(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(x.ttl)),
		ID:        uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(x.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign session token")
	}

	return token, nil
}

// Verify parses and validates a session token and returns the bound user
// ID. Every failure mode (bad signature, expiry, wrong algorithm, garbage
// input) collapses into ErrUnauthenticated so callers fail closed.
func (x *TokenSource) Verify(token string) (types.UserID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			return []byte(x.secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(x.now),
	)
	if err != nil {
		return "", goerr.Wrap(types.ErrUnauthenticated, "invalid session token",
			goerr.V("cause", err.Error()),
		)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", goerr.Wrap(types.ErrUnauthenticated, "session token has no subject")
	}

	return types.UserID(claims.Subject), nil
}

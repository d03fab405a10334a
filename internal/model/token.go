package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionTokenDuration is the absolute lifetime of a session token.
const SessionTokenDuration = 24 * time.Hour

// TokenClaims are the verified contents of a session token.
type TokenClaims struct {
	AccountID uuid.UUID
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager signs and verifies session tokens.
type TokenManager interface {
	Issue(accountID uuid.UUID) (token string, claims TokenClaims, err error)
	// Parse checks signature and expiry. It returns ErrTokenInvalid or
	// ErrTokenExpired for tokens that fail those checks.
	Parse(token string) (TokenClaims, error)
}

// RevocationStore is the append-only set of revoked tokens, keyed by token hash.
type RevocationStore interface {
	// Add inserts the key. Adding an existing key is not an error.
	Add(ctx context.Context, key string, expiresAt time.Time) error
	Contains(ctx context.Context, key string) (bool, error)
}

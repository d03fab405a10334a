package model

import "context"

// Hasher hashes and compares account secrets.
type Hasher interface {
	Hash(secret string) ([]byte, error)
	// Compare reports whether secret matches hash. Malformed hashes never match.
	Compare(secret string, hash []byte) bool
}

// Notifier delivers verification codes to account holders.
type Notifier interface {
	SendCode(ctx context.Context, identity, code string) error
}

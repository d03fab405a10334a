package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/account-auth/internal/model"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

var _ model.Hasher = (*Bcrypt)(nil)

// Bcrypt implements Hasher with bcrypt.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a bcrypt hasher. Costs outside bcrypt's range fall back to DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns a salted bcrypt hash of secret.
func (b *Bcrypt) Hash(secret string) ([]byte, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), b.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}
	return h, nil
}

// Compare reports whether secret matches hash. bcrypt compares digests in
// constant time; malformed hashes are reported as a mismatch.
func (b *Bcrypt) Compare(secret string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/account-auth/internal/model"
)

var _ model.RevocationStore = (*RevocationList)(nil)

// RevocationList is a concurrent append-only set of revoked token keys.
type RevocationList struct {
	entries sync.Map
}

func NewRevocationList() *RevocationList {
	return &RevocationList{}
}

func (l *RevocationList) Add(_ context.Context, key string, expiresAt time.Time) error {
	l.entries.LoadOrStore(key, expiresAt)
	return nil
}

func (l *RevocationList) Contains(_ context.Context, key string) (bool, error) {
	_, ok := l.entries.Load(key)
	return ok, nil
}

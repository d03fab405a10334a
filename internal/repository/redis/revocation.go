// Package redis keeps the revocation list in Redis so several instances of the
// service share it.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/account-auth/internal/model"
)

const revocationKeyPrefix = "revoked:"

var _ model.RevocationStore = (*RevocationList)(nil)

// RevocationList stores each revoked token hash as a key that expires together
// with the token. Expired tokens fail signature checks before the lookup, so
// an evicted key never turns a rejected token into an accepted one.
type RevocationList struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRevocationList(client redis.Cmdable) *RevocationList {
	return &RevocationList{
		client: client,
		now:    time.Now,
	}
}

func (l *RevocationList) Add(ctx context.Context, key string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(l.now())
	if ttl <= 0 {
		return nil
	}

	if err := l.client.SetNX(ctx, revocationKeyPrefix+key, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (l *RevocationList) Contains(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Exists(ctx, revocationKeyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return n > 0, nil
}

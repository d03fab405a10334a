package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/account-auth/internal/model"
)

var _ model.RevocationStore = (*RevocationRepository)(nil)

// RevocationRepository persists revoked token hashes. It only works together
// with the postgres account store since both share the connection.
type RevocationRepository struct {
	db DB
}

func NewRevocationRepository(db DB) *RevocationRepository {
	return &RevocationRepository{
		db: db,
	}
}

func (r *RevocationRepository) Add(ctx context.Context, key string, expiresAt time.Time) error {
	query := `INSERT INTO revoked_tokens (token_hash, expires_at) VALUES ($1, $2)
			  ON CONFLICT (token_hash) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, key, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (r *RevocationRepository) Contains(ctx context.Context, key string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_hash = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return exists, nil
}

// Purge deletes entries whose tokens have expired on their own. Expired
// tokens are rejected before the revocation lookup, so purging never changes
// an authenticate outcome.
func (r *RevocationRepository) Purge(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Package context carries the authenticated account through request contexts.
package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/account-auth/internal/model"
)

var _ model.ContextManager = (*Manager)(nil)

type accountIDKey struct{}

// Manager stores the account ID as a context value. Values set by clients in
// request metadata are never consulted, so the ID can only come from the
// authenticate middleware.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetAccountIDToContext returns a copy of ctx carrying accountID.
func (m *Manager) SetAccountIDToContext(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDKey{}, accountID)
}

// GetAccountIDFromContext returns the account ID stored by SetAccountIDToContext.
// The nil UUID is reported as missing.
func (m *Manager) GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

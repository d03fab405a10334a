// Package memory provides in-process implementations of the stores, used for
// local development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/account-auth/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

// AccountRepository keeps accounts in a map guarded by a mutex. Update holds
// the lock for the whole read-modify-write.
type AccountRepository struct {
	mu         sync.Mutex
	byIdentity map[string]*model.Account
	byID       map[uuid.UUID]*model.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byIdentity: make(map[string]*model.Account),
		byID:       make(map[uuid.UUID]*model.Account),
	}
}

func (r *AccountRepository) FindByIdentity(_ context.Context, identity string) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.byIdentity[identity]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return clone(acc), nil
}

func (r *AccountRepository) FindByID(_ context.Context, id uuid.UUID) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.byID[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return clone(acc), nil
}

func (r *AccountRepository) Create(_ context.Context, account model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byIdentity[account.Identity]; ok {
		return model.Account{}, model.ErrDuplicateIdentity
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	stored := clone(&account)
	r.byIdentity[stored.Identity] = &stored
	r.byID[stored.ID] = &stored

	return clone(&stored), nil
}

func (r *AccountRepository) Update(_ context.Context, identity string, fn func(*model.Account) error) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byIdentity[identity]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}

	working := clone(stored)
	if err := fn(&working); err != nil {
		return model.Account{}, err
	}

	// identity and id are immutable
	working.ID = stored.ID
	working.Identity = stored.Identity
	*stored = clone(&working)

	return working, nil
}

func clone(a *model.Account) model.Account {
	out := *a
	if a.SecretHash != nil {
		out.SecretHash = append([]byte(nil), a.SecretHash...)
	}
	if a.PendingCode != nil {
		code := *a.PendingCode
		out.PendingCode = &code
	}
	return out
}

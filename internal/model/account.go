package model

import (
	"context"
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	minIdentityLen = 5
	minNameLen     = 3
	minSecretLen   = 6
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	FindByIdentity(ctx context.Context, identity string) (Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (Account, error)
	// Create stores a new account. It returns ErrDuplicateIdentity when an
	// account with the same identity already exists.
	Create(ctx context.Context, account Account) (Account, error)
	// Update loads the account by identity, applies fn and persists the result
	// as a single atomic read-modify-write. If fn returns an error nothing is
	// written and the error is returned as is.
	Update(ctx context.Context, identity string, fn func(*Account) error) (Account, error)
}

// Account represents a stored account with its credential and verification state.
type Account struct {
	ID          uuid.UUID
	Identity    string
	Name        DisplayName
	SecretHash  []byte
	Verified    bool
	PendingCode *PendingCode
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Summary returns the public view of the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{
		ID:       a.ID,
		Identity: a.Identity,
		Name:     a.Name,
		Verified: a.Verified,
	}
}

// DisplayName is the presentation-only name of an account holder.
type DisplayName struct {
	First string
	Last  string
}

// Validate checks name length rules: first name is required, last name is
// optional but must be long enough when present.
func (n DisplayName) Validate() error {
	if utf8.RuneCountInString(n.First) < minNameLen {
		return fmt.Errorf("%w: first name must be at least %d characters long", ErrInvalidArgument, minNameLen)
	}
	if n.Last != "" && utf8.RuneCountInString(n.Last) < minNameLen {
		return fmt.Errorf("%w: last name must be at least %d characters long", ErrInvalidArgument, minNameLen)
	}
	return nil
}

// AccountSummary is the account shape returned to callers. It never carries
// the secret hash or the pending code.
type AccountSummary struct {
	ID       uuid.UUID
	Identity string
	Name     DisplayName
	Verified bool
}

// Registration holds the input of a register operation.
type Registration struct {
	Identity string
	Name     DisplayName
	Secret   string
}

// Validate checks the registration input.
func (r Registration) Validate() error {
	if err := ValidateIdentity(r.Identity); err != nil {
		return err
	}
	if err := r.Name.Validate(); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Secret) < minSecretLen {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidArgument, minSecretLen)
	}
	return nil
}

// ValidateIdentity checks that identity looks like a bare email address.
func ValidateIdentity(identity string) error {
	if len(identity) < minIdentityLen {
		return fmt.Errorf("%w: email must be at least %d characters long", ErrInvalidArgument, minIdentityLen)
	}
	addr, err := mail.ParseAddress(identity)
	if err != nil || addr.Address != identity {
		return fmt.Errorf("%w: invalid email", ErrInvalidArgument)
	}
	return nil
}

// Session is the result of a successful register or login.
type Session struct {
	Token   string
	Account AccountSummary
}

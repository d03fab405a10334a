package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/account-auth/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, identity, first_name, last_name, secret_hash, verified,
			  pending_code, pending_code_expires_at, created_at, updated_at`

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) FindByIdentity(ctx context.Context, identity string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE identity = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, identity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by identity: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	code, expiresAt := pendingColumns(account.PendingCode)

	query := `INSERT INTO accounts (id, identity, first_name, last_name, secret_hash, verified,
			  pending_code, pending_code_expires_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		account.ID, account.Identity, account.Name.First, account.Name.Last, account.SecretHash,
		account.Verified, code, expiresAt, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Account{}, model.ErrDuplicateIdentity
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Update locks the row with SELECT ... FOR UPDATE so concurrent updates of
// the same account are serialized by the database.
func (r *AccountRepository) Update(ctx context.Context, identity string, fn func(*model.Account) error) (model.Account, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE identity = $1 FOR UPDATE`

	stored, err := scanAccount(tx.QueryRow(ctx, query, identity))
	if err != nil {
		_ = tx.Rollback(ctx)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to lock account: %w", err)
	}

	working := stored
	if err := fn(&working); err != nil {
		_ = tx.Rollback(ctx)
		return model.Account{}, err
	}
	working.ID = stored.ID
	working.Identity = stored.Identity

	code, expiresAt := pendingColumns(working.PendingCode)
	update := `UPDATE accounts SET first_name = $2, last_name = $3, secret_hash = $4, verified = $5,
			   pending_code = $6, pending_code_expires_at = $7, updated_at = NOW()
			   WHERE id = $1 RETURNING updated_at`

	err = tx.QueryRow(ctx, update,
		working.ID, working.Name.First, working.Name.Last, working.SecretHash,
		working.Verified, code, expiresAt,
	).Scan(&working.UpdatedAt)
	if err != nil {
		_ = tx.Rollback(ctx)
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Account{}, fmt.Errorf("failed to commit account update: %w", err)
	}

	return working, nil
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var (
		account   model.Account
		code      *string
		expiresAt *time.Time
	)

	err := row.Scan(
		&account.ID, &account.Identity, &account.Name.First, &account.Name.Last, &account.SecretHash,
		&account.Verified, &code, &expiresAt, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return model.Account{}, err
	}

	if code != nil && expiresAt != nil {
		account.PendingCode = &model.PendingCode{Code: *code, ExpiresAt: *expiresAt}
	}

	return account, nil
}

func pendingColumns(p *model.PendingCode) (*string, *time.Time) {
	if p == nil {
		return nil, nil
	}
	code, expiresAt := p.Code, p.ExpiresAt
	return &code, &expiresAt
}

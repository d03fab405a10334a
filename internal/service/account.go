package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/account-auth/internal/logger"
	"github.com/dtroode/account-auth/internal/model"
	"github.com/dtroode/account-auth/internal/verification"
)

// Operation names reported to the OperationObserver.
const (
	OpRegister     = "register"
	OpVerifyEmail  = "verify_email"
	OpLogin        = "login"
	OpResend       = "resend_verification"
	OpLogout       = "logout"
	OpAuthenticate = "authenticate"
	OpProfile      = "profile"
)

// dummySecret is hashed once and compared against when a login names an
// unknown identity, so both failure paths pay for a hash comparison.
const dummySecret = "account-auth/no-such-account"

// OperationObserver records the outcome of account operations.
type OperationObserver interface {
	Observe(operation string, err error)
}

type nopObserver struct{}

func (nopObserver) Observe(string, error) {}

// Account orchestrates the account lifecycle: registration, email
// verification, login, verification resend and logout.
type Account struct {
	accounts model.AccountStore
	hasher   model.Hasher
	codes    *verification.Engine
	tokens   *TokenService
	notifier model.Notifier
	observer OperationObserver
	logger   *logger.Logger
	now      func() time.Time

	dummyMu   sync.Mutex
	dummyHash []byte
}

func NewAccount(
	accounts model.AccountStore,
	hasher model.Hasher,
	codes *verification.Engine,
	tokens *TokenService,
	notifier model.Notifier,
	observer OperationObserver,
	logger *logger.Logger,
) *Account {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Account{
		accounts: accounts,
		hasher:   hasher,
		codes:    codes,
		tokens:   tokens,
		notifier: notifier,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates an unverified account, sends it a verification code and
// returns a session token for immediate use.
func (a *Account) Register(ctx context.Context, reg model.Registration) (_ model.Session, err error) {
	defer func() { a.observer.Observe(OpRegister, err) }()

	a.logger.Debug("Account service: starting registration",
		"identity", reg.Identity)

	if err := reg.Validate(); err != nil {
		return model.Session{}, err
	}

	_, err = a.accounts.FindByIdentity(ctx, reg.Identity)
	if err == nil {
		a.logger.Info("Account service: identity already registered",
			"identity", reg.Identity)
		return model.Session{}, model.ErrDuplicateIdentity
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Account service: failed to get account by identity",
			"identity", reg.Identity,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get account by identity: %w", err)
	}

	secretHash, err := a.hasher.Hash(reg.Secret)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash secret: %w", err)
	}

	now := a.now()
	account := model.Account{
		ID:         uuid.New(),
		Identity:   reg.Identity,
		Name:       reg.Name,
		SecretHash: secretHash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	code, err := a.codes.Issue(&account, now)
	if err != nil {
		return model.Session{}, err
	}

	account, err = a.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateIdentity) {
			a.logger.Info("Account service: identity registered concurrently",
				"identity", reg.Identity)
			return model.Session{}, model.ErrDuplicateIdentity
		}
		a.logger.Error("Account service: failed to create account",
			"identity", reg.Identity,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create account: %w", err)
	}

	token, err := a.tokens.Issue(ctx, account.ID)
	if err != nil {
		return model.Session{}, err
	}

	if err := a.sendCode(ctx, account.Identity, code.Code); err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Account service: registration completed",
		"identity", account.Identity,
		"account_id", account.ID)

	return model.Session{Token: token, Account: account.Summary()}, nil
}

// VerifyEmail marks the account verified if code matches its pending,
// unexpired verification code. Every rejection is reported as
// ErrInvalidOrExpiredCode.
func (a *Account) VerifyEmail(ctx context.Context, identity, code string) (err error) {
	defer func() { a.observer.Observe(OpVerifyEmail, err) }()

	now := a.now()
	account, err := a.accounts.Update(ctx, identity, func(acc *model.Account) error {
		result := a.codes.Validate(acc, code, now)
		if result != verification.Valid {
			a.logger.Debug("Account service: verification code rejected",
				"identity", identity,
				"result", result.String())
			return model.ErrInvalidOrExpiredCode
		}
		acc.Verified = true
		acc.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidOrExpiredCode) {
			return model.ErrInvalidOrExpiredCode
		}
		a.logger.Error("Account service: failed to verify email",
			"identity", identity,
			"error", err.Error())
		return fmt.Errorf("failed to verify email: %w", err)
	}

	a.logger.Info("Account service: email verified",
		"identity", identity,
		"account_id", account.ID)

	return nil
}

// Login checks the secret and the verification state and issues a new
// session token. Unknown identities and wrong secrets are indistinguishable.
func (a *Account) Login(ctx context.Context, identity, secret string) (_ model.Session, err error) {
	defer func() { a.observer.Observe(OpLogin, err) }()

	account, err := a.accounts.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.hasher.Compare(secret, a.unknownAccountHash())
			return model.Session{}, model.ErrInvalidCredentials
		}
		a.logger.Error("Account service: failed to get account by identity",
			"identity", identity,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get account by identity: %w", err)
	}

	if !a.hasher.Compare(secret, account.SecretHash) {
		a.logger.Info("Account service: login rejected",
			"identity", identity)
		return model.Session{}, model.ErrInvalidCredentials
	}

	if !account.Verified {
		a.logger.Info("Account service: login attempted before email verification",
			"identity", identity)
		return model.Session{}, model.ErrNotVerified
	}

	token, err := a.tokens.Issue(ctx, account.ID)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Account service: login completed",
		"identity", identity,
		"account_id", account.ID)

	return model.Session{Token: token, Account: account.Summary()}, nil
}

// ResendVerification replaces the pending code of an unverified account with
// a fresh one and sends it.
func (a *Account) ResendVerification(ctx context.Context, identity string) (err error) {
	defer func() { a.observer.Observe(OpResend, err) }()

	var code model.PendingCode
	now := a.now()
	_, err = a.accounts.Update(ctx, identity, func(acc *model.Account) error {
		if acc.Verified {
			return model.ErrAlreadyVerified
		}
		issued, err := a.codes.Issue(acc, now)
		if err != nil {
			return err
		}
		acc.UpdatedAt = now
		code = issued
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrAlreadyVerified) {
			return err
		}
		a.logger.Error("Account service: failed to renew verification code",
			"identity", identity,
			"error", err.Error())
		return fmt.Errorf("failed to renew verification code: %w", err)
	}

	if err := a.sendCode(ctx, identity, code.Code); err != nil {
		return err
	}

	a.logger.Info("Account service: verification code resent",
		"identity", identity)

	return nil
}

// Logout revokes token. An empty token is a no-op.
func (a *Account) Logout(ctx context.Context, token string) (err error) {
	defer func() { a.observer.Observe(OpLogout, err) }()

	if token == "" {
		return nil
	}
	return a.tokens.Revoke(ctx, token)
}

// Authenticate resolves a session token to the account it was issued to.
func (a *Account) Authenticate(ctx context.Context, token string) (_ uuid.UUID, err error) {
	defer func() { a.observer.Observe(OpAuthenticate, err) }()

	return a.tokens.Authenticate(ctx, token)
}

// Profile returns the summary of the account with accountID.
func (a *Account) Profile(ctx context.Context, accountID uuid.UUID) (_ model.AccountSummary, err error) {
	defer func() { a.observer.Observe(OpProfile, err) }()

	account, err := a.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AccountSummary{}, model.ErrNotFound
		}
		return model.AccountSummary{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account.Summary(), nil
}

func (a *Account) sendCode(ctx context.Context, identity, code string) error {
	if err := a.notifier.SendCode(ctx, identity, code); err != nil {
		a.logger.Error("Account service: failed to send verification code",
			"identity", identity,
			"error", err.Error())
		if errors.Is(err, model.ErrDeliveryFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", model.ErrDeliveryFailed, err)
	}
	return nil
}

// unknownAccountHash returns the hash compared against for unknown
// identities. A failed attempt is not cached; the next call retries.
func (a *Account) unknownAccountHash() []byte {
	a.dummyMu.Lock()
	defer a.dummyMu.Unlock()

	if a.dummyHash != nil {
		return a.dummyHash
	}

	h, err := a.hasher.Hash(dummySecret)
	if err != nil {
		a.logger.Error("Account service: failed to prepare dummy hash",
			"error", err.Error())
		return nil
	}
	a.dummyHash = h
	return a.dummyHash
}

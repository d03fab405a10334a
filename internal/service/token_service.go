package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/account-auth/internal/logger"
	"github.com/dtroode/account-auth/internal/model"
)

// TokenService issues session tokens and maintains the revocation list.
// It composes the TokenManager and RevocationStore.
type TokenService struct {
	manager     model.TokenManager
	revocations model.RevocationStore
	logger      *logger.Logger
}

func NewTokenService(manager model.TokenManager, revocations model.RevocationStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, revocations: revocations, logger: logger}
}

// Issue mints a session token for accountID.
func (s *TokenService) Issue(_ context.Context, accountID uuid.UUID) (string, error) {
	token, _, err := s.manager.Issue(accountID)
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}
	return token, nil
}

// Authenticate checks signature, then expiry, then revocation, and returns the
// account the token was issued to.
func (s *TokenService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.manager.Parse(token)
	if err != nil {
		if errors.Is(err, model.ErrTokenExpired) {
			return uuid.Nil, model.ErrTokenExpired
		}
		return uuid.Nil, model.ErrTokenInvalid
	}

	revoked, err := s.revocations.Contains(ctx, hashToken(token))
	if err != nil {
		return uuid.Nil, fmt.Errorf("check revocation list: %w", err)
	}
	if revoked {
		return uuid.Nil, model.ErrTokenRevoked
	}

	return claims.AccountID, nil
}

// Revoke adds token to the revocation list. Revoking a token twice is not an
// error, and tokens that already fail verification are not recorded.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	claims, err := s.manager.Parse(token)
	if err != nil {
		s.logger.Debug("Token service: skipping revocation of unusable token",
			"error", err.Error())
		return nil
	}

	if err := s.revocations.Add(ctx, hashToken(token), claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session token: %w", err)
	}

	s.logger.Info("Token service: session token revoked",
		"account_id", claims.AccountID,
		"token_id", claims.TokenID)

	return nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// Package handler implements the account gRPC API on top of the account service.
package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/account-auth/internal/api/grpc/accountapi"
	"github.com/dtroode/account-auth/internal/logger"
	"github.com/dtroode/account-auth/internal/model"
)

const (
	msgRegistered      = "Registration successful. Please check your email for verification code."
	msgVerified        = "Email verified successfully"
	msgResent          = "Verification code resent successfully"
	msgLoggedOut       = "Logged out successfully"
	msgLoginSuccessful = "Login successful"
	msgUnauthenticated = "missing account in context"
)

// AccountService defines the account lifecycle operations exposed over gRPC.
type AccountService interface {
	Register(ctx context.Context, reg model.Registration) (model.Session, error)
	VerifyEmail(ctx context.Context, identity, code string) error
	Login(ctx context.Context, identity, secret string) (model.Session, error)
	ResendVerification(ctx context.Context, identity string) error
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, accountID uuid.UUID) (model.AccountSummary, error)
}

// Account handles gRPC endpoints of the account service.
type Account struct {
	accountapi.UnimplementedAccountServer
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

var _ accountapi.AccountServer = (*Account)(nil)

func NewAccount(accountService AccountService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account and returns a session token for it.
func (h *Account) Register(ctx context.Context, req *accountapi.RegisterRequest) (*accountapi.SessionResponse, error) {
	h.logger.Debug("Account handler: processing register request",
		"email", req.Email)

	session, err := h.accountService.Register(ctx, model.Registration{
		Identity: req.Email,
		Name:     model.DisplayName{First: req.FirstName, Last: req.LastName},
		Secret:   req.Password,
	})
	if err != nil {
		return nil, handleError(err)
	}

	return &accountapi.SessionResponse{
		Message: msgRegistered,
		Token:   session.Token,
		Account: toAPIAccount(session.Account),
	}, nil
}

// VerifyEmail confirms the email with the code that was sent to it.
func (h *Account) VerifyEmail(ctx context.Context, req *accountapi.VerifyEmailRequest) (*accountapi.MessageResponse, error) {
	h.logger.Debug("Account handler: processing verify email request",
		"email", req.Email)

	if err := h.accountService.VerifyEmail(ctx, req.Email, req.Code); err != nil {
		return nil, handleError(err)
	}

	return &accountapi.MessageResponse{Message: msgVerified}, nil
}

// Login exchanges credentials of a verified account for a session token.
func (h *Account) Login(ctx context.Context, req *accountapi.LoginRequest) (*accountapi.SessionResponse, error) {
	h.logger.Debug("Account handler: processing login request",
		"email", req.Email)

	session, err := h.accountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, handleError(err)
	}

	return &accountapi.SessionResponse{
		Message: msgLoginSuccessful,
		Token:   session.Token,
		Account: toAPIAccount(session.Account),
	}, nil
}

// ResendVerification issues and sends a fresh verification code.
func (h *Account) ResendVerification(ctx context.Context, req *accountapi.ResendVerificationRequest) (*accountapi.MessageResponse, error) {
	h.logger.Debug("Account handler: processing resend verification request",
		"email", req.Email)

	if err := h.accountService.ResendVerification(ctx, req.Email); err != nil {
		return nil, handleError(err)
	}

	return &accountapi.MessageResponse{Message: msgResent}, nil
}

// Logout revokes the token from the request body, or the bearer token when
// the body carries none. Logging out without any token succeeds.
func (h *Account) Logout(ctx context.Context, req *accountapi.LogoutRequest) (*accountapi.MessageResponse, error) {
	token := req.Token
	if token == "" {
		token, _ = auth.AuthFromMD(ctx, "bearer")
	}

	if err := h.accountService.Logout(ctx, token); err != nil {
		return nil, handleError(err)
	}

	return &accountapi.MessageResponse{Message: msgLoggedOut}, nil
}

// Profile returns the account the request was authenticated as.
func (h *Account) Profile(ctx context.Context, _ *accountapi.ProfileRequest) (*accountapi.AccountResponse, error) {
	accountID, ok := h.contextManager.GetAccountIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, msgUnauthenticated)
	}

	summary, err := h.accountService.Profile(ctx, accountID)
	if err != nil {
		return nil, handleError(err)
	}

	return &accountapi.AccountResponse{Account: toAPIAccount(summary)}, nil
}

func toAPIAccount(s model.AccountSummary) accountapi.Account {
	return accountapi.Account{
		ID:        s.ID.String(),
		Email:     s.Identity,
		FirstName: s.Name.First,
		LastName:  s.Name.Last,
		Verified:  s.Verified,
	}
}

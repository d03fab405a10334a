package middleware

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/account-auth/internal/logger"
	"github.com/dtroode/account-auth/internal/model"
)

// Authenticator resolves a session token to an account ID.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the account ID into context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// AuthFunc reads "authorization: Bearer <token>" from metadata, validates the
// token and returns a context carrying the account ID.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}

	accountID, err := m.authenticator.Authenticate(ctx, token)
	if err != nil {
		msg, ok := tokenErrorMessage(err)
		if !ok {
			m.logger.Error("Authenticate middleware: failed to authenticate token", "error", err.Error())
			return nil, status.Error(codes.Internal, "internal server error")
		}
		m.logger.Debug("Authenticate middleware: token rejected", "error", err.Error())
		return nil, status.Error(codes.Unauthenticated, msg)
	}
	if accountID == uuid.Nil {
		return nil, status.Error(codes.Unauthenticated, model.ErrTokenInvalid.Error())
	}

	return m.contextManager.SetAccountIDToContext(ctx, accountID), nil
}

// tokenErrorMessage reports whether err is a token rejection and, if so, the
// message sent to the client.
func tokenErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, model.ErrTokenExpired):
		return model.ErrTokenExpired.Error(), true
	case errors.Is(err, model.ErrTokenRevoked):
		return model.ErrTokenRevoked.Error(), true
	case errors.Is(err, model.ErrTokenInvalid):
		return model.ErrTokenInvalid.Error(), true
	default:
		return "", false
	}
}

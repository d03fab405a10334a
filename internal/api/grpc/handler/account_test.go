package handler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/account-auth/internal/api/grpc/accountapi"
	servermocks "github.com/dtroode/account-auth/internal/mocks"
	"github.com/dtroode/account-auth/internal/model"
	"github.com/dtroode/account-auth/internal/testutil"
)

func newHandler(t *testing.T) (*Account, *servermocks.AccountService, *servermocks.ContextManager) {
	t.Helper()
	svc := servermocks.NewAccountService(t)
	cm := servermocks.NewContextManager(t)
	return NewAccount(svc, cm, testutil.MakeNoopLogger()), svc, cm
}

func sampleSummary() model.AccountSummary {
	return model.AccountSummary{
		ID:       uuid.New(),
		Identity: "ada@example.com",
		Name:     model.DisplayName{First: "Ada", Last: "Lovelace"},
	}
}

func TestAccount_Register(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		summary := sampleSummary()

		svc.On("Register", mock.Anything, model.Registration{
			Identity: "ada@example.com",
			Name:     model.DisplayName{First: "Ada", Last: "Lovelace"},
			Secret:   "hunter22",
		}).Return(model.Session{Token: "tok", Account: summary}, nil)

		resp, err := h.Register(context.Background(), &accountapi.RegisterRequest{
			Email:     "ada@example.com",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Password:  "hunter22",
		})
		require.NoError(t, err)
		assert.Equal(t, "tok", resp.Token)
		assert.Equal(t, summary.ID.String(), resp.Account.ID)
		assert.Equal(t, "ada@example.com", resp.Account.Email)
		assert.False(t, resp.Account.Verified)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)

		svc.On("Register", mock.Anything, mock.Anything).Return(model.Session{}, model.ErrDuplicateIdentity)

		_, err := h.Register(context.Background(), &accountapi.RegisterRequest{Email: "ada@example.com"})
		assert.Equal(t, codes.AlreadyExists, status.Code(err))
	})
}

func TestAccount_VerifyEmail(t *testing.T) {
	t.Parallel()

	h, svc, _ := newHandler(t)
	svc.On("VerifyEmail", mock.Anything, "ada@example.com", "123456").Return(nil).Once()
	svc.On("VerifyEmail", mock.Anything, "ada@example.com", "000000").Return(model.ErrInvalidOrExpiredCode).Once()

	resp, err := h.VerifyEmail(context.Background(), &accountapi.VerifyEmailRequest{Email: "ada@example.com", Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, msgVerified, resp.Message)

	_, err = h.VerifyEmail(context.Background(), &accountapi.VerifyEmailRequest{Email: "ada@example.com", Code: "000000"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAccount_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
	}{
		{"success", nil, codes.OK},
		{"invalid credentials", model.ErrInvalidCredentials, codes.Unauthenticated},
		{"not verified", model.ErrNotVerified, codes.PermissionDenied},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc, _ := newHandler(t)

			session := model.Session{}
			if tt.err == nil {
				session = model.Session{Token: "tok", Account: sampleSummary()}
			}
			svc.On("Login", mock.Anything, "ada@example.com", "hunter22").Return(session, tt.err)

			resp, err := h.Login(context.Background(), &accountapi.LoginRequest{Email: "ada@example.com", Password: "hunter22"})
			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.err == nil {
				assert.Equal(t, "tok", resp.Token)
			} else {
				assert.Nil(t, resp)
			}
		})
	}
}

func TestAccount_ResendVerification(t *testing.T) {
	t.Parallel()

	h, svc, _ := newHandler(t)
	svc.On("ResendVerification", mock.Anything, "ada@example.com").Return(nil).Once()
	svc.On("ResendVerification", mock.Anything, "nobody@example.com").Return(model.ErrNotFound).Once()
	svc.On("ResendVerification", mock.Anything, "done@example.com").Return(model.ErrAlreadyVerified).Once()

	resp, err := h.ResendVerification(context.Background(), &accountapi.ResendVerificationRequest{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, msgResent, resp.Message)

	_, err = h.ResendVerification(context.Background(), &accountapi.ResendVerificationRequest{Email: "nobody@example.com"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = h.ResendVerification(context.Background(), &accountapi.ResendVerificationRequest{Email: "done@example.com"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestAccount_Logout(t *testing.T) {
	t.Parallel()

	t.Run("token from body", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Logout", mock.Anything, "body-token").Return(nil)

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer header-token"))
		resp, err := h.Logout(ctx, &accountapi.LogoutRequest{Token: "body-token"})
		require.NoError(t, err)
		assert.Equal(t, msgLoggedOut, resp.Message)
	})

	t.Run("token from metadata", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Logout", mock.Anything, "header-token").Return(nil)

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer header-token"))
		_, err := h.Logout(ctx, &accountapi.LogoutRequest{})
		require.NoError(t, err)
	})

	t.Run("no token", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Logout", mock.Anything, "").Return(nil)

		_, err := h.Logout(context.Background(), &accountapi.LogoutRequest{})
		require.NoError(t, err)
	})
}

func TestAccount_Profile(t *testing.T) {
	t.Parallel()

	t.Run("authenticated", func(t *testing.T) {
		t.Parallel()
		h, svc, cm := newHandler(t)
		summary := sampleSummary()
		summary.Verified = true

		cm.On("GetAccountIDFromContext", mock.Anything).Return(summary.ID, true)
		svc.On("Profile", mock.Anything, summary.ID).Return(summary, nil)

		resp, err := h.Profile(context.Background(), &accountapi.ProfileRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Ada", resp.Account.FirstName)
		assert.True(t, resp.Account.Verified)
	})

	t.Run("missing account in context", func(t *testing.T) {
		t.Parallel()
		h, _, cm := newHandler(t)
		cm.On("GetAccountIDFromContext", mock.Anything).Return(uuid.Nil, false)

		_, err := h.Profile(context.Background(), &accountapi.ProfileRequest{})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}

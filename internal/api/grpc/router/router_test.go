package router_test

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dtroode/account-auth/internal/api/grpc/accountapi"
	grpcctx "github.com/dtroode/account-auth/internal/api/grpc/context"
	"github.com/dtroode/account-auth/internal/api/grpc/router"
	"github.com/dtroode/account-auth/internal/hash"
	"github.com/dtroode/account-auth/internal/model"
	"github.com/dtroode/account-auth/internal/repository/memory"
	"github.com/dtroode/account-auth/internal/service"
	"github.com/dtroode/account-auth/internal/testutil"
	"github.com/dtroode/account-auth/internal/token"
	"github.com/dtroode/account-auth/internal/verification"
)

type inbox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (i *inbox) SendCode(_ context.Context, identity, code string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.codes[identity] = code
	return nil
}

func (i *inbox) code(identity string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.codes[identity]
}

func startServer(t *testing.T) (*accountapi.AccountClient, *inbox) {
	t.Helper()

	log := testutil.MakeNoopLogger()
	jwtManager, err := token.NewJWT("router-test-secret", model.SessionTokenDuration)
	require.NoError(t, err)

	box := &inbox{codes: make(map[string]string)}
	accounts := service.NewAccount(
		memory.NewAccountRepository(),
		hash.NewBcrypt(bcrypt.MinCost),
		verification.NewEngine(0),
		service.NewTokenService(jwtManager, memory.NewRevocationList(), log),
		box,
		nil,
		log,
	)

	s := router.New(accounts, grpcctx.NewManager(), log).Register()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return accountapi.NewAccountClient(conn), box
}

func withToken(ctx context.Context, tok string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+tok)
}

func TestRouter_AccountLifecycle(t *testing.T) {
	client, box := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reg, err := client.Register(ctx, &accountapi.RegisterRequest{
		Email:     "ada@example.com",
		FirstName: "Ada",
		Password:  "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)
	assert.False(t, reg.Account.Verified)

	profile, err := client.Profile(withToken(ctx, reg.Token), &accountapi.ProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", profile.Account.Email)

	_, err = client.Login(ctx, &accountapi.LoginRequest{Email: "ada@example.com", Password: "hunter22"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = client.Register(ctx, &accountapi.RegisterRequest{Email: "ada@example.com", FirstName: "Ada", Password: "hunter22"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = client.VerifyEmail(ctx, &accountapi.VerifyEmailRequest{Email: "ada@example.com", Code: box.code("ada@example.com")})
	require.NoError(t, err)

	login, err := client.Login(ctx, &accountapi.LoginRequest{Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.True(t, login.Account.Verified)

	_, err = client.Logout(withToken(ctx, login.Token), &accountapi.LogoutRequest{})
	require.NoError(t, err)

	_, err = client.Profile(withToken(ctx, login.Token), &accountapi.ProfileRequest{})
	st := status.Convert(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, "token revoked", st.Message())

	// the registration token is independent of the revoked login token
	_, err = client.Profile(withToken(ctx, reg.Token), &accountapi.ProfileRequest{})
	require.NoError(t, err)
}

func TestRouter_ProfileRequiresToken(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Profile(ctx, &accountapi.ProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = client.Profile(withToken(ctx, "garbage"), &accountapi.ProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRouter_ValidationErrors(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Register(ctx, &accountapi.RegisterRequest{Email: "not-an-email", FirstName: "Ada", Password: "hunter22"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.ResendVerification(ctx, &accountapi.ResendVerificationRequest{Email: "nobody@example.com"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.Logout(ctx, &accountapi.LogoutRequest{})
	assert.NoError(t, err)
}

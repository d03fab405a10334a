//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/account-auth/internal/model"
	repo "github.com/dtroode/account-auth/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "accounts_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/accounts_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newAccount(identity string) model.Account {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return model.Account{
		ID:         uuid.New(),
		Identity:   identity,
		Name:       model.DisplayName{First: "Ada"},
		SecretHash: []byte("hash"),
		PendingCode: &model.PendingCode{
			Code:      "123456",
			ExpiresAt: now.Add(model.VerificationCodeDuration),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAccountRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	accounts := repo.NewAccountRepository(conn)
	acc := newAccount("lifecycle@example.com")

	saved, err := accounts.Create(ctx, acc)
	require.NoError(t, err)
	require.Equal(t, acc.ID, saved.ID)

	_, err = accounts.Create(ctx, newAccount(acc.Identity))
	require.ErrorIs(t, err, model.ErrDuplicateIdentity)

	byIdentity, err := accounts.FindByIdentity(ctx, acc.Identity)
	require.NoError(t, err)
	require.NotNil(t, byIdentity.PendingCode)
	require.Equal(t, "123456", byIdentity.PendingCode.Code)

	updated, err := accounts.Update(ctx, acc.Identity, func(a *model.Account) error {
		a.Verified = true
		a.PendingCode = nil
		return nil
	})
	require.NoError(t, err)
	require.True(t, updated.Verified)

	byID, err := accounts.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	require.True(t, byID.Verified)
	require.Nil(t, byID.PendingCode)

	_, err = accounts.FindByIdentity(ctx, "missing@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	accounts := repo.NewAccountRepository(conn)

	const n = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok, dupErr int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := accounts.Create(ctx, newAccount("race@example.com"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, model.ErrDuplicateIdentity) {
				dupErr++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, ok)
	require.Equal(t, n-1, dupErr)
}

func TestRevocationRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	revocations := repo.NewRevocationRepository(conn)
	key := uuid.NewString()
	expiresAt := time.Now().Add(time.Hour)

	found, err := revocations.Contains(ctx, key)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, revocations.Add(ctx, key, expiresAt))
	require.NoError(t, revocations.Add(ctx, key, expiresAt))

	found, err = revocations.Contains(ctx, key)
	require.NoError(t, err)
	require.True(t, found)

	purged, err := revocations.Purge(ctx, expiresAt.Add(time.Second))
	require.NoError(t, err)
	require.GreaterOrEqual(t, purged, int64(1))
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/account-auth/internal/hash"
	"github.com/dtroode/account-auth/internal/model"
	"github.com/dtroode/account-auth/internal/repository/memory"
	"github.com/dtroode/account-auth/internal/testutil"
	"github.com/dtroode/account-auth/internal/token"
	"github.com/dtroode/account-auth/internal/verification"
)

// outbox records the last code sent to each identity.
type outbox struct {
	mu    sync.Mutex
	codes map[string]string
	sent  int
	err   error
}

func newOutbox() *outbox {
	return &outbox{codes: make(map[string]string)}
}

func (o *outbox) SendCode(_ context.Context, identity, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.codes[identity] = code
	o.sent++
	return nil
}

func (o *outbox) last(identity string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.codes[identity]
}

// recordingObserver counts observed operation outcomes.
type recordingObserver struct {
	mu   sync.Mutex
	errs map[string][]error
}

func (r *recordingObserver) Observe(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errs == nil {
		r.errs = make(map[string][]error)
	}
	r.errs[op] = append(r.errs[op], err)
}

type fixture struct {
	svc      *Account
	accounts *memory.AccountRepository
	revoked  *memory.RevocationList
	outbox   *outbox
	observer *recordingObserver
	jwt      *token.JWT
	clock    *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := &now

	jwtManager, err := token.NewJWT("test-secret", model.SessionTokenDuration,
		token.WithClock(func() time.Time { return *clock }))
	require.NoError(t, err)

	accounts := memory.NewAccountRepository()
	revoked := memory.NewRevocationList()
	box := newOutbox()
	observer := &recordingObserver{}
	log := testutil.MakeNoopLogger()

	tokens := NewTokenService(jwtManager, revoked, log)
	svc := NewAccount(
		accounts,
		hash.NewBcrypt(bcrypt.MinCost),
		verification.NewEngine(model.VerificationCodeDuration),
		tokens,
		box,
		observer,
		log,
	)
	svc.now = func() time.Time { return *clock }

	return &fixture{
		svc:      svc,
		accounts: accounts,
		revoked:  revoked,
		outbox:   box,
		observer: observer,
		jwt:      jwtManager,
		clock:    clock,
	}
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func registration(identity string) model.Registration {
	return model.Registration{
		Identity: identity,
		Name:     model.DisplayName{First: "Ann"},
		Secret:   "secret1",
	}
}

// Package verification generates and checks one-time email verification codes.
package verification

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/dtroode/account-auth/internal/model"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Result is the outcome of validating a supplied code.
type Result int

const (
	Invalid Result = iota
	Valid
	Expired
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Expired:
		return "expired"
	default:
		return "invalid"
	}
}

// Engine generates, validates and clears pending codes on account records.
// It holds no state of its own; callers run it inside the store's atomic
// update so the read-modify-write of the pending code is serialized per account.
type Engine struct {
	ttl    time.Duration
	random io.Reader
}

// NewEngine creates an Engine issuing codes valid for ttl.
func NewEngine(ttl time.Duration) *Engine {
	if ttl <= 0 {
		ttl = model.VerificationCodeDuration
	}
	return &Engine{ttl: ttl, random: rand.Reader}
}

// Generate draws a uniformly random six-digit code expiring ttl after now.
func (e *Engine) Generate(now time.Time) (model.PendingCode, error) {
	n, err := rand.Int(e.random, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return model.PendingCode{}, fmt.Errorf("failed to generate verification code: %w", err)
	}

	return model.PendingCode{
		Code:      strconv.FormatInt(n.Int64()+codeMin, 10),
		ExpiresAt: now.Add(e.ttl),
	}, nil
}

// Issue generates a code and binds it to account, superseding any pending one.
func (e *Engine) Issue(account *model.Account, now time.Time) (model.PendingCode, error) {
	code, err := e.Generate(now)
	if err != nil {
		return model.PendingCode{}, err
	}
	account.PendingCode = &code
	return code, nil
}

// Validate checks supplied against the account's pending code. On Valid the
// pending code is cleared so the same code cannot be replayed. Expired codes
// are left in place.
func (e *Engine) Validate(account *model.Account, supplied string, now time.Time) Result {
	pending := account.PendingCode
	if pending == nil {
		return Invalid
	}

	if subtle.ConstantTimeCompare([]byte(pending.Code), []byte(supplied)) != 1 {
		return Invalid
	}

	if pending.Expired(now) {
		return Expired
	}

	account.PendingCode = nil
	return Valid
}

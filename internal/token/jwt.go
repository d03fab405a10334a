package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/account-auth/internal/model"
)

// Claims represents session token claims.
type Claims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID `json:"account_id"`
}

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// Option configures a JWT manager.
type Option func(*JWT)

// WithClock sets the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT token manager with the provided secret key and
// token lifetime. A non-positive ttl selects model.SessionTokenDuration.
func NewJWT(secretKey string, ttl time.Duration, opts ...Option) (*JWT, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}
	if ttl <= 0 {
		ttl = model.SessionTokenDuration
	}
	j := &JWT{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Issue signs a token for accountID expiring ttl after issuance.
func (j *JWT) Issue(accountID uuid.UUID) (string, model.TokenClaims, error) {
	now := j.now().Truncate(time.Second)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		AccountID: accountID,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, toModel(claims), nil
}

// Parse validates signature and expiry and returns the token claims.
func (j *JWT) Parse(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && signatureVerified(err) {
			return model.TokenClaims{}, fmt.Errorf("%w: %w", model.ErrTokenExpired, err)
		}
		return model.TokenClaims{}, fmt.Errorf("%w: %w", model.ErrTokenInvalid, err)
	}
	if !token.Valid || claims.AccountID == uuid.Nil {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	return toModel(*claims), nil
}

// signatureVerified reports whether a parse error happened after the
// signature check passed. jwt verifies the signature before claims, so an
// error that only carries claim validation failures implies a valid signature.
func signatureVerified(err error) bool {
	return !errors.Is(err, jwt.ErrTokenSignatureInvalid) &&
		!errors.Is(err, jwt.ErrTokenMalformed) &&
		!errors.Is(err, jwt.ErrTokenUnverifiable)
}

func toModel(c Claims) model.TokenClaims {
	out := model.TokenClaims{
		AccountID: c.AccountID,
		TokenID:   c.ID,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}

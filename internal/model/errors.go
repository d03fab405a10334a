package model

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")

	ErrDuplicateIdentity    = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNotVerified          = errors.New("email is not verified")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")
	ErrAlreadyVerified      = errors.New("email is already verified")
	ErrDeliveryFailed       = errors.New("failed to send verification email")
	ErrInvalidArgument      = errors.New("invalid argument")

	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

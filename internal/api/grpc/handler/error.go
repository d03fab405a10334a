package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/account-auth/internal/model"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{model.ErrInvalidArgument, codes.InvalidArgument},
	{model.ErrInvalidOrExpiredCode, codes.InvalidArgument},
	{model.ErrDuplicateIdentity, codes.AlreadyExists},
	{model.ErrInvalidCredentials, codes.Unauthenticated},
	{model.ErrNotVerified, codes.PermissionDenied},
	{model.ErrAlreadyVerified, codes.FailedPrecondition},
	{model.ErrNotFound, codes.NotFound},
	{model.ErrDeliveryFailed, codes.Unavailable},
	{model.ErrTokenInvalid, codes.Unauthenticated},
	{model.ErrTokenExpired, codes.Unauthenticated},
	{model.ErrTokenRevoked, codes.Unauthenticated},
}

// handleError converts a service error to a gRPC status. Unexpected errors
// become Internal with a generic message so storage details never leak.
func handleError(err error) error {
	for _, e := range errorCodes {
		if !errors.Is(err, e.err) {
			continue
		}
		msg := e.err.Error()
		if e.err == model.ErrInvalidArgument {
			msg = err.Error()
		}
		return status.Error(e.code, msg)
	}
	return status.Error(codes.Internal, "internal server error")
}

package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/account-auth/internal/logger"
)

// Logging is a unary interceptor that logs every request with its outcome.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method, duration and status code. Server-side failures are
// logged at error level, client errors at warn.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	log := l.logger.With(
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", code.String())

	switch code {
	case codes.OK:
		log.Info("gRPC request completed")
	case codes.Internal, codes.Unknown, codes.Unavailable, codes.DataLoss:
		log.Error("gRPC request failed", "error", err.Error())
	default:
		log.Warn("gRPC request rejected", "error", status.Convert(err).Message())
	}

	return resp, err
}

// Package router assembles the gRPC server: interceptors and service handlers.
package router

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/account-auth/internal/api/grpc/accountapi"
	_ "github.com/dtroode/account-auth/internal/api/grpc/codec"
	"github.com/dtroode/account-auth/internal/api/grpc/handler"
	"github.com/dtroode/account-auth/internal/api/grpc/middleware"
	"github.com/dtroode/account-auth/internal/logger"
	"github.com/dtroode/account-auth/internal/model"
)

// AccountService is what the router needs from the account service: the
// operations exposed as RPCs and token authentication for protected ones.
type AccountService interface {
	handler.AccountService
	middleware.Authenticator
}

// Router builds the gRPC server of the account service.
type Router struct {
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func New(
	accountService AccountService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// protectedMethods require a valid bearer token.
var protectedMethods = map[string]bool{
	accountapi.ProfileMethod: true,
}

func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return protectedMethods[c.FullMethod()]
}

// Register creates the gRPC server with logging, panic recovery and bearer
// authentication on protected methods, and registers the account service.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.accountService, r.contextManager, r.logger)

	recoverPanic := recovery.WithRecoveryHandler(func(p any) error {
		r.logger.Error("gRPC handler panic", "panic", fmt.Sprint(p))
		return status.Error(codes.Internal, "internal server error")
	})

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoverPanic),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	s := grpc.NewServer(opts...)
	accountapi.RegisterAccountServer(s, handler.NewAccount(r.accountService, r.contextManager, r.logger))

	return s
}

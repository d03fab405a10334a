package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/account-auth/internal/api/grpc/context"
	"github.com/dtroode/account-auth/internal/api/grpc/router"
	grpcServer "github.com/dtroode/account-auth/internal/api/grpc/server"
	"github.com/dtroode/account-auth/internal/config"
	"github.com/dtroode/account-auth/internal/hash"
	"github.com/dtroode/account-auth/internal/logger"
	"github.com/dtroode/account-auth/internal/metrics"
	"github.com/dtroode/account-auth/internal/model"
	"github.com/dtroode/account-auth/internal/notify"
	"github.com/dtroode/account-auth/internal/repository/memory"
	"github.com/dtroode/account-auth/internal/repository/postgres"
	redisrepo "github.com/dtroode/account-auth/internal/repository/redis"
	"github.com/dtroode/account-auth/internal/server"
	"github.com/dtroode/account-auth/internal/service"
	"github.com/dtroode/account-auth/internal/token"
	"github.com/dtroode/account-auth/internal/verification"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	logAppVersion()

	var (
		db       *postgres.Connection
		checks   []metrics.ReadinessChecker
		accounts model.AccountStore
	)

	if cfg.StorageDriver == config.DriverPostgres {
		db, err = postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize storage", "error", err)
		}
		defer db.Close()
		checks = append(checks, db.Ping)
		accounts = postgres.NewAccountRepository(db)
	} else {
		logger.Warn("using in-memory account storage, data is lost on restart")
		accounts = memory.NewAccountRepository()
	}

	var revocations model.RevocationStore
	switch cfg.RevocationDriver {
	case config.DriverPostgres:
		repo := postgres.NewRevocationRepository(db)
		go runRevocationPurge(ctx, repo, cfg.RevocationPurgeInterval, logger)
		revocations = repo
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		checks = append(checks, func(ctx context.Context) error { return client.Ping(ctx).Err() })
		revocations = redisrepo.NewRevocationList(client)
	default:
		revocations = memory.NewRevocationList()
	}

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}

	var notifier model.Notifier
	if cfg.SMTP.Enabled {
		notifier = notify.NewMailer(notify.MailerConfig{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			Username:    cfg.SMTP.Username,
			Password:    cfg.SMTP.Password,
			From:        cfg.SMTP.From,
			ImplicitTLS: cfg.SMTP.ImplicitTLS,
			CodeTTL:     cfg.Verification.CodeTTL,
		}, logger)
	} else {
		logger.Warn("SMTP is disabled, verification codes are written to the log")
		notifier = notify.NewLogNotifier(logger)
	}

	metricsServer := metrics.NewServer(cfg.Metrics.Addr, readiness(checks), logger)

	tokenService := service.NewTokenService(tokenManager, revocations, logger)
	accountService := service.NewAccount(
		accounts,
		hash.NewBcrypt(cfg.Hash.Cost),
		verification.NewEngine(cfg.Verification.CodeTTL),
		tokenService,
		notifier,
		metricsServer.Metrics(),
		logger,
	)

	r := router.New(accountService, grpcctx.NewManager(), logger)
	gs := r.Register()
	reflection.Register(gs)
	grpcSrv := grpcServer.NewGRPCServer(gs, fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	servers := []struct {
		srv model.Server
		sl  model.SecurityLayer
	}{
		{grpcSrv, sl},
		{metricsServer, server.NewPlainListener()},
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.srv, s.sl)
	}

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.srv.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func readiness(checks []metrics.ReadinessChecker) metrics.ReadinessChecker {
	return func(ctx context.Context) error {
		var errs []error
		for _, check := range checks {
			if err := check(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

// runRevocationPurge drops revocation entries of tokens that have expired on
// their own until ctx is done.
func runRevocationPurge(ctx context.Context, repo *postgres.RevocationRepository, interval time.Duration, logger *logger.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.Purge(ctx, now)
			if err != nil {
				logger.Error("failed to purge revoked tokens", "error", err)
				continue
			}
			logger.Debug("purged revoked tokens", "count", n)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	grpcctx "github.com/dtroode/twooter-server/internal/api/grpc/context"
	"github.com/dtroode/twooter-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/twooter-server/internal/api/grpc/server"
	"github.com/dtroode/twooter-server/internal/config"
	"github.com/dtroode/twooter-server/internal/credential"
	"github.com/dtroode/twooter-server/internal/directory"
	"github.com/dtroode/twooter-server/internal/logger"
	"github.com/dtroode/twooter-server/internal/server"
	"github.com/dtroode/twooter-server/internal/service"
	"github.com/dtroode/twooter-server/internal/token"
	"github.com/dtroode/twooter-server/internal/twootlog"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	logAppVersion()

	verifier := credential.NewArgon2(credential.KDFParams{
		Time:    cfg.KDF.Time,
		MemKiB:  cfg.KDF.MemKiB,
		Par:     cfg.KDF.Par,
		SaltLen: cfg.KDF.SaltLen,
	})
	twooterService := service.NewTwooter(directory.New(), twootlog.New(), verifier, logger)
	tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL), twooterService, logger)

	r := router.New(twooterService, tokenService, grpcctx.NewManager(), cfg.Delivery.MailboxSize, logger)
	srv := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	securityLayer := server.NewSecurityLayer(cfg.GRPC)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server on", "address", srv.Address(), "tls", cfg.GRPC.EnableHTTPS)
		if err := srv.Start(securityLayer); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", "address", srv.Address())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", srv.Address())
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped with error", "error", err)
	}
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

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vncsmyrnk/pollgate/internal/adapters/clock"
	"github.com/vncsmyrnk/pollgate/internal/adapters/crypto/secp256k1"
	"github.com/vncsmyrnk/pollgate/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pollgate/internal/adapters/repository"
	"github.com/vncsmyrnk/pollgate/internal/config"
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
	"github.com/vncsmyrnk/pollgate/internal/core/services"
)

// @title        Pollgate API
// @version      1.0
// @description  Gateway-authorized poll and vote ledger.
// @BasePath     /api
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load("server", os.Args[1:])
	if err != nil {
		fatal(logger, "failed to load config", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		fatal(logger, "failed to open storage", err)
	}
	defer closeRepo()

	var clk ports.Clock = clock.NewSystemClock()
	if cfg.NTPServer != "" {
		ntpClock, err := clock.NewNTPClock(cfg.NTPServer, logger)
		if err != nil {
			fatal(logger, "failed to sync clock", err)
		}
		go ntpClock.Run(ctx, cfg.NTPServer, cfg.NTPSyncInterval)
		clk = ntpClock
	}

	ledger := services.NewLedgerService(repo, secp256k1.NewVerifier(), clk, logger)
	if err := initializeGateway(ctx, ledger, cfg.Gateway); err != nil {
		fatal(logger, "failed to initialize gateway", err)
	}

	queries := services.NewQueryService(repo)
	handler := http.NewHandler(
		http.NewLedgerHandler(ledger),
		http.NewPollHandler(queries),
		http.NewVoteHandler(queries),
	)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "storage", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			fatal(logger, "server failed", err)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fatal(logger, "shutdown failed", err)
	}
}

// initializeGateway stores the configured gateway on first boot. On later
// boots the configured key must match the stored one.
func initializeGateway(ctx context.Context, ledger ports.LedgerService, gw config.Gateway) error {
	if !gw.Configured() {
		return nil
	}
	publicKey, err := gw.PublicKeyBytes()
	if err != nil {
		return err
	}

	err = ledger.Initialize(ctx, ports.InitializeInput{
		GatewayAddress:   gw.Address,
		GatewayHash:      gw.Hash,
		GatewayPublicKey: publicKey,
	})
	if !errors.Is(err, domain.ErrAlreadyInitialized) {
		return err
	}

	stored, err := ledger.Gateway(ctx)
	if err != nil {
		return err
	}
	if !bytes.Equal(stored.PublicKey, publicKey) {
		return fmt.Errorf("configured gateway key differs from the stored one: %w", domain.ErrAlreadyInitialized)
	}
	return nil
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

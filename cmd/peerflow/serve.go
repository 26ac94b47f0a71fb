package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/White-Devil2839/peerflow/internal/auth"
	"github.com/White-Devil2839/peerflow/internal/config"
	"github.com/White-Devil2839/peerflow/internal/recur"
	"github.com/White-Devil2839/peerflow/internal/server"
	"github.com/White-Devil2839/peerflow/internal/service"
	"github.com/White-Devil2839/peerflow/internal/storage/sqlite"
	"github.com/White-Devil2839/peerflow/pkg/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the PeerFlow API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger := logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	store, err := sqlite.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("storage initialized", "database", cfg.Storage.DBPath)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.TokenTTL())
	locks := service.NewGroupLocks()
	balances := service.NewBalanceService(store, logger)

	srv := server.New(server.Services{
		Auth:     service.NewAuthService(auth.NewPasswordAuthenticator(store), tokens, store, logger),
		Groups:   service.NewGroupService(store, cfg.Groups.DefaultThreshold, logger),
		Expenses: service.NewExpenseService(store, locks, logger),
		Payments: service.NewPaymentService(store, locks, balances, logger),
		Balances: balances,
		Overdue:  service.NewOverdueService(store, locks, logger),
	}, tokens, logger)

	scheduler := recur.NewScheduler(store, logger)
	if err := scheduler.Start(cfg.Recur.CronSpec); err != nil {
		return err
	}
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "address", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mediagate "github.com/cnyakundi/siddessocial-sub002"
	"github.com/cnyakundi/siddessocial-sub002/config"
	"github.com/cnyakundi/siddessocial-sub002/filesystem"
	gatehttp "github.com/cnyakundi/siddessocial-sub002/http"
	"github.com/cnyakundi/siddessocial-sub002/s3"
	"github.com/cnyakundi/siddessocial-sub002/secretsource"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the media gateway HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5790, "HTTP server port")
	serveCmd.Flags().String("storage-backend", "filesystem", "object store backend (filesystem, s3)")
	serveCmd.Flags().String("storage-path", "./media", "storage directory for the filesystem backend")
	serveCmd.Flags().String("secret-file", "", "path to a file holding the shared token secret")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.Load(configFiles, cmd.Flags())
	if err != nil {
		return err
	}
	setupLogging(cfg.Log.Level)

	secret, err := secretsource.Load(cfg.Auth.Secret)
	if err != nil {
		return fmt.Errorf("load secret: %w", err)
	}
	if len(secret) == 0 {
		// Fail closed, not fatal: the server comes up and answers 503
		// until a secret is deployed.
		slog.Warn("no token secret configured, all media requests will be refused")
	}
	verifier := mediagate.NewVerifier(secret)

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	handlerConfig := gatehttp.HandlerConfig{CORS: cfg.CORS}
	handler := gatehttp.NewHandler(&handlerConfig, verifier, store)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		// No WriteTimeout: media downloads are long-lived streams and a
		// stalled client is bounded by its own context, not a deadline.
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "backend", cfg.Storage.Backend)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func openStore(ctx context.Context, cfg config.StorageConfig) (mediagate.ObjectStore, func(), error) {
	switch cfg.Backend {
	case "s3":
		store, err := s3.NewStore(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	default: // filesystem, enforced by config validation
		if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("storage directory does not exist: %s", cfg.Path)
		}
		root, err := os.OpenRoot(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage root: %w", err)
		}
		return filesystem.NewStore(root), func() { _ = root.Close() }, nil
	}
}

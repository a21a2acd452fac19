package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/assetserve"
	"github.com/sagarc03/assetserve/config"
	"github.com/sagarc03/assetserve/filesystem"
	assethttp "github.com/sagarc03/assetserve/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the assetserve HTTP server on the configured static root.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5710, "HTTP server port (env: ASSETSERVE_SERVER_PORT)")
	serveCmd.Flags().Bool("no-index", false, "disable the asset listing at /")

	rootCmd.AddCommand(serveCmd)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	store, err := filesystem.NewFileStorage(cfg.Static.Root)
	if err != nil {
		return fmt.Errorf("open static root: %w", err)
	}
	defer func() { _ = store.Close() }()

	service, err := assetserve.NewAssetService(store)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	handlerConfig := assethttp.HandlerConfig{
		Index: cfg.Index,
	}
	handler := assethttp.NewHandler(&handlerConfig, service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  seconds(cfg.Server.ReadTimeout),
		WriteTimeout: seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  seconds(cfg.Server.IdleTimeout),
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), seconds(cfg.Server.ShutdownTimeout))
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "static_root", store.Dir(), "index", cfg.Index.Enabled)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

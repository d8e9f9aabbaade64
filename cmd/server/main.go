package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/hwinventory/internal/config"
	"github.com/JonMunkholm/hwinventory/internal/core"
	_ "github.com/JonMunkholm/hwinventory/internal/core/tables" // Register all sheets
	"github.com/JonMunkholm/hwinventory/internal/logging"
	"github.com/JonMunkholm/hwinventory/internal/sink"
	"github.com/JonMunkholm/hwinventory/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err, "code", core.MapError(err).Code)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"source", cfg.Source.Path,
		"export_format", cfg.Export.Format,
		"export_dir", cfg.Export.Dir,
		"port", cfg.Server.Port,
		"api_key_required", cfg.Security.RequireAPIKey,
	)
	slog.Debug("configuration", "config", cfg.String())

	ctx := context.Background()

	serializer, closeSink, err := sink.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to set up export target", "error", err)
		os.Exit(1)
	}
	defer closeSink()

	slog.Info("sheets registered", "count", core.SheetCount())

	service := core.NewService(cfg, serializer)

	// A missing source is not fatal for the server: the page reports LOAD001
	// until POST /api/reload succeeds.
	if _, err := service.Reload(ctx, nil); err != nil {
		slog.Warn("initial load failed", "error", err, "code", core.MapError(err).Code)
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		// Let running exports finish writing their artifacts
		if status := service.ExportStatus(); status.Active > 0 {
			slog.Info("waiting for exports to complete", "active", status.Active)
			if err := service.WaitForExports(shutdownCtx); err != nil {
				slog.Warn("exports did not complete in time", "error", err)
			}
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		closeSink()
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	coachtip "github.com/claude/coachtip"
	"github.com/claude/coachtip/internal/config"
	"github.com/claude/coachtip/internal/mcp"
	"github.com/claude/coachtip/internal/server"
	"github.com/claude/coachtip/internal/storage"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (empty for env only)")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	if err := run(*configPath, *migrateOnly); err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Error().Err(err).Msg("coachtipd failed")
		os.Exit(1)
	}
}

// run starts the daemon and blocks until SIGINT/SIGTERM or a server error.
// Errors are returned so deferred cleanup (store, tsnet) always runs.
func run(configPath string, migrateOnly bool) error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := cfg.Log.Logger(os.Stdout)
	log.Info().Str("version", Version).Msg("CoachTip starting")

	ctx := context.Background()
	store, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	if migrateOnly {
		log.Info().Msg("migrate-only: exiting")
		return nil
	}

	srv := server.New(store, server.Options{
		APIKey:         cfg.Auth.APIKey,
		MaxCues:        cfg.Coaching.MaxCues,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, log)

	if cfg.Server.MCP {
		mcpSrv := mcp.New(store, Version, cfg.Coaching.MaxCues, log.With().Str("component", "mcp").Logger())
		srv.Handle("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))
		log.Info().Msg("MCP endpoint enabled at /mcp")
	}

	// Start server: tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			return fmt.Errorf("tsnet start: %w", err)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			return fmt.Errorf("tsnet local client: %w", err)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			return fmt.Errorf("tsnet listen: %w", err)
		}
		log.Info().Str("hostname", cfg.Tailscale.Hostname).Msg("tsnet server starting")
	} else {
		addr := cfg.Server.Addr()
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		log.Info().Str("addr", addr).Str("mode", "dev (no tailscale)").Msg("server starting")
	}

	httpSrv := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpSrv.Serve(listener)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
	return nil
}

// openStore connects PostgreSQL (after applying migrations) when a host is
// configured, otherwise opens the SQLite file.
func openStore(ctx context.Context, db config.DatabaseConfig, log zerolog.Logger) (storage.Store, error) {
	if !db.UsePostgres() {
		store, err := storage.OpenSQLite(db.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", db.SQLitePath).Msg("sqlite store opened")
		return store, nil
	}

	dsn := db.DSN()
	if err := storage.RunMigrations(dsn, coachtip.MigrationsFS, "migrations"); err != nil {
		return nil, err
	}
	log.Info().Msg("migrations applied")

	store, err := storage.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("database connected")
	return store, nil
}

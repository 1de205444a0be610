package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shiftscope/shiftscope/internal/alerts"
	"github.com/shiftscope/shiftscope/internal/api"
	"github.com/shiftscope/shiftscope/internal/auth"
	"github.com/shiftscope/shiftscope/internal/config"
	"github.com/shiftscope/shiftscope/internal/export"
	"github.com/shiftscope/shiftscope/internal/receiver"
	"github.com/shiftscope/shiftscope/internal/session"
	"github.com/shiftscope/shiftscope/internal/store"
	"github.com/shiftscope/shiftscope/internal/ws"
	"github.com/shiftscope/shiftscope/pkg/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	uiDir := flag.String("ui-dir", "", "serve the dashboard static files from this directory (e.g. ui/dist); leave empty to disable")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("shiftscope starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"session_ttl", cfg.Server.SessionTTL,
		"report_all_changes", cfg.Server.ReportAllChanges,
		"alert_rules", len(cfg.Alerts.Rules),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Snapshot store with background TTL eviction.
	st := store.New(cfg.Server.SessionTTL)
	go st.Run(ctx)

	// Alerts engine — evaluates rules on every stored snapshot.
	alertEngine := alerts.New(cfg.Alerts)

	// Session registry. Every snapshot a session reports lands in the store
	// and is evaluated against the alert rules.
	sink := func(snap *types.PageSnapshot) {
		st.Put(snap)
		alertEngine.Evaluate(snap)
	}
	registry := session.NewRegistry(cfg.Server.SessionTTL, cfg.Server.ReportAllChanges, sink)
	go registry.Run(ctx)

	// Hot reload: alert rules and webhooks pick up config file edits without
	// a restart. Server settings (port, TTL) still need one.
	go func() {
		err := config.Watch(ctx, *configPath, func(next *config.Config) {
			alertEngine.UpdateConfig(next.Alerts)
			slog.Info("alert config reloaded", "rules", len(next.Alerts.Rules))
		})
		if err != nil {
			slog.Warn("config watch disabled", "err", err)
		}
	}()

	// WebSocket hub — broadcasts snapshots to dashboard clients.
	hub := ws.New(st, cfg.Server.BroadcastInterval)
	go hub.Run(ctx)

	// Combined HTTP server: beacon intake + REST API + WebSocket hub +
	// Prometheus exposition, all on HTTPPort.
	mux := http.NewServeMux()
	mux.Handle("/api/v1/beacon", receiver.New(registry, cfg.Server.MaxBeaconBytes))
	mux.Handle("/api/", api.New(st, alertEngine))
	mux.Handle("/ws/stream", hub)
	mux.Handle("/metrics", export.New(st))

	// Optional: serve the pre-built dashboard from a local directory.
	// The "/" catch-all serves index.html for any unknown path (SPA routing).
	if *uiDir != "" {
		fs := http.FileServer(http.Dir(*uiDir))
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			// SPA fallback: if the requested file doesn't exist, serve index.html.
			path := *uiDir + r.URL.Path
			if _, err := os.Stat(path); os.IsNotExist(err) {
				http.ServeFile(w, r, *uiDir+"/index.html")
				return
			}
			fs.ServeHTTP(w, r)
		})
		slog.Info("serving UI static files", "dir", *uiDir)
	}

	// Optional API key authentication wraps the whole surface. The beacon
	// intake is included: browsers attach the key via the reporting snippet.
	middleware := auth.APIKeyMiddleware(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
	)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: middleware(mux),
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shiftscope shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}

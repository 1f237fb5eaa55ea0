package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/orgdesk/admin/internal/app"
	"github.com/orgdesk/admin/internal/config"
	"github.com/orgdesk/admin/internal/database"
	adminHttp "github.com/orgdesk/admin/internal/http"
	importHandler "github.com/orgdesk/admin/internal/http/importcsv"
	refreshHandler "github.com/orgdesk/admin/internal/http/refresh"
	viewsHandler "github.com/orgdesk/admin/internal/http/views"
	"github.com/orgdesk/admin/internal/metrics"
	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/session"
	sessionStore "github.com/orgdesk/admin/internal/session/store"
	"github.com/orgdesk/admin/internal/transport"
)

const refreshTimeout = 2 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.Session.Driver, cfg.Session.DSN)
	if err != nil {
		slog.Error("failed to open session database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := sessionStore.New(db)
	if err := repo.Migrate(ctx); err != nil {
		slog.Error("failed to migrate session database", "error", err)
		os.Exit(1)
	}

	state := session.NewState(repo)

	switch err := state.Restore(ctx); {
	case errors.Is(err, session.ErrNoSession):
		slog.Warn("no stored session, log in through the tui first")
	case err != nil:
		slog.Error("failed to restore session", "error", err)
		os.Exit(1)
	case state.Expired(time.Now()):
		slog.Warn("stored session token has expired")
	}

	m := metrics.New()

	invoker := transport.New(transport.Config{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.API.Timeout,
		RateLimit:   cfg.API.RateLimit,
		Burst:       cfg.API.RateBurst,
		Credentials: state,
		Logger:      logger,
	})

	stores := app.New(app.Options{
		Invoker:  invoker,
		Notifier: notify.LogNotifier{Logger: logger},
		Recorder: m,
		Logger:   logger,
		Session:  state,
		Locale:   cfg.App.Locale,
		Fenced:   cfg.Sync.Fencing,
	})

	go func() {
		updates := stores.Bus.Subscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case s := <-updates:
				m.ObserveBus(s)
			}
		}
	}()

	refresh := func() {
		rctx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()

		start := time.Now()
		err := stores.Refresh(rctx)
		m.ObserveSync(err == nil, time.Since(start))

		if err != nil {
			slog.Warn("scheduled refresh incomplete", "error", err)
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Sync.Schedule, refresh); err != nil {
		slog.Error("invalid sync schedule", "schedule", cfg.Sync.Schedule, "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	defer scheduler.Stop()

	go refresh()

	var (
		viewsH   = viewsHandler.NewHandler(stores)
		refreshH = refreshHandler.NewHandler(stores, m, refreshTimeout)
		importH  = importHandler.NewHandler(stores.Importer)
	)

	router := adminHttp.New(viewsH, refreshH, importH, m, cfg.Sync.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Sync.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("starting server", "port", srv.Addr, "schedule", cfg.Sync.Schedule)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

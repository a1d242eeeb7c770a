package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/zonetasks/internal/backup"
	"github.com/dukerupert/zonetasks/internal/board"
	"github.com/dukerupert/zonetasks/internal/config"
	"github.com/dukerupert/zonetasks/internal/idgen"
	"github.com/dukerupert/zonetasks/internal/logging"
	"github.com/dukerupert/zonetasks/internal/model"
	"github.com/dukerupert/zonetasks/internal/scheduler"
	"github.com/dukerupert/zonetasks/internal/server"
	"github.com/dukerupert/zonetasks/internal/store"
	ws "github.com/dukerupert/zonetasks/internal/websocket"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "zonetasks:", err)
		os.Exit(1)
	}
}

func run() error {
	restorePath := flag.String("restore", "", "restore state from an encrypted backup file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel)
	loc, _ := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := store.NewByEngine(ctx, cfg.StoreEngine, cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	if *restorePath != "" {
		state, err := backup.Restore(*restorePath, cfg.BackupPassphrase)
		if err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		if err := store.SaveState(kv, state); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		logger.Info("state restored", "file", *restorePath, "zones", len(state.Zones), "history", len(state.History))
		return nil
	}

	hub := ws.NewHub(logger.With("component", "websocket"))
	backupMgr := backup.NewManager(backup.Config{
		Dir:           cfg.BackupDir,
		Passphrase:    cfg.BackupPassphrase,
		RetentionDays: cfg.BackupRetentionDays,
	}, func(s backup.Status) {
		hub.Broadcast(ws.Message{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(s.State),
			Extra: map[string]any{
				"in_progress": s.InProgress,
				"error":       s.Error,
			},
		})
	}, logger.With("component", "backup"))

	b := board.New(board.Config{
		Store:    kv,
		IDs:      idgen.UUID{},
		Clock:    time.Now,
		Location: loc,
		Notifier: hub,
		OnCloseDay: func(s model.State) {
			if !backupMgr.Enabled() {
				return
			}
			if _, err := backupMgr.Export(context.Background(), s); err != nil {
				logger.Error("close-day backup failed", "error", err)
			}
		},
		Logger: logger.With("component", "board"),
	})
	b.Load()

	srv := server.New(b, hub, backupMgr, logger)

	sched := scheduler.New(loc, logger.With("component", "scheduler"))
	if err := sched.Add("refresh", cfg.RefreshSchedule, func() { b.Refresh() }); err != nil {
		return err
	}
	if err := sched.Add("ratelimit-cleanup", "@every 10m", srv.RateLimiter().Cleanup); err != nil {
		return err
	}
	sched.Start()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("zonetasks running", "addr", cfg.Addr, "store", cfg.StoreEngine, "timezone", loc.String())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

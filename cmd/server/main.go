package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rpggio/gigboard/internal/auth"
	"github.com/rpggio/gigboard/internal/config"
	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/dashboard"
	"github.com/rpggio/gigboard/internal/domain/message"
	"github.com/rpggio/gigboard/internal/domain/milestone"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/profile"
	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/domain/proposal"
	"github.com/rpggio/gigboard/internal/domain/review"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/events"
	"github.com/rpggio/gigboard/internal/metrics"
	"github.com/rpggio/gigboard/internal/store"
	"github.com/rpggio/gigboard/internal/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gigboard: %v\n", err)
		os.Exit(1)
	}
}

// run wires the server and blocks until it is shut down. Deferred cleanup
// runs before main decides the exit code.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logWriter := io.Writer(os.Stdout)
	if cfg.Log.Path != "" {
		if err := ensureDir(cfg.Log.Path); err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			rotator := &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
			}
			defer rotator.Close()
			logWriter = rotator
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if cfg.DB.Driver == store.DriverSQLite {
		if err := ensureDir(cfg.DB.DSN); err != nil {
			return fmt.Errorf("failed to prepare database path: %w", err)
		}
	}

	db, err := store.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(context.Background()); err != nil {
		return err
	}

	var publisher notification.Publisher
	if cfg.Events.AMQPURL != "" {
		p, err := events.Dial(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			return fmt.Errorf("failed to connect to broker: %w", err)
		}
		defer p.Close()
		publisher = p
		logger.Info("publishing notifications", "exchange", cfg.Events.Exchange)
	}

	userRepo := store.NewUserRepository(db)
	projectRepo := store.NewProjectRepository(db)
	contractRepo := store.NewContractRepository(db)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	notificationSvc := notification.NewService(store.NewNotificationRepository(db), publisher, logger)
	notifier := metrics.CountNotifications(notificationSvc)

	svcs := transport.Services{
		Users:         user.NewService(userRepo, tokens, logger),
		Projects:      project.NewService(projectRepo, logger),
		Proposals:     proposal.NewService(store.NewProposalRepository(db), projectRepo, notifier, logger),
		Contracts:     contract.NewService(contractRepo, notifier, contract.Options{RequireFullPayment: cfg.Contracts.RequireFullPayment}, logger),
		Milestones:    milestone.NewService(store.NewMilestoneRepository(db), projectRepo, contractRepo, notifier, logger),
		Notifications: notificationSvc,
		Reviews:       review.NewService(store.NewReviewRepository(db), contractRepo, notifier, logger),
		Profiles:      profile.NewService(store.NewProfileRepository(db), userRepo, logger),
		Messages:      message.NewService(store.NewMessageRepository(db), userRepo, notifier, logger),
		Dashboard:     dashboard.NewService(store.NewDashboardRepository(db), logger),
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           transport.NewServer(svcs, tokens, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr, "db", cfg.DB.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	return waitForShutdown(logger, httpServer, serveErr)
}

// ensureDir creates the parent directory of a file path. SQLite URIs and
// in-memory databases are left alone.
func ensureDir(path string) error {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// waitForShutdown blocks until a signal arrives or the listener fails, then
// drains in-flight requests.
func waitForShutdown(logger *slog.Logger, server *http.Server, serveErr <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-serveErr:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

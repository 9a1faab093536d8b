package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/db"
	"github.com/edukit/campus/internal/handlers"
	"github.com/edukit/campus/internal/handlers/middleware"
	"github.com/edukit/campus/internal/logger"
	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/repository/postgres"
	"github.com/edukit/campus/internal/service"
	"github.com/edukit/campus/internal/service/auth"
	"github.com/edukit/campus/internal/service/auth/tokenmanager"
)

// Login and registration rate limit, per client IP
const (
	loginRateRequests = 10
	loginRateWindow   = time.Minute
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler

	pool interface{ Close() }
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Sentry stays dormant when DSN is empty
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              c.SentryDSN,
		Environment:      c.Environment,
		AttachStacktrace: true,
	}); err != nil {
		return nil, fmt.Errorf("error while initializing sentry. Err: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		SecretKey:  c.SecretKey,
		AccessTTL:  c.AccessTokenTTL,
		RefreshTTL: c.RefreshTokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}
	authService, err := auth.NewService(auth.Config{}, tokenManager, storage.User())
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	services, err := service.New(storage, tokenManager)
	if err != nil {
		return nil, fmt.Errorf("error while creating services. Err: %w", err)
	}

	if err := bootstrapAdmin(ctx, c, authService, log); err != nil {
		return nil, err
	}

	// Metrics live in their own registry so tests never clash on the global one
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	mux := handlers.NewRouter(handlers.RouterConfig{
		Auth:         authService,
		Registration: services.Registration,
		Students:     services.Student,
		Teachers:     services.Teacher,
		Courses:      services.Course,
		Exams:        services.Exam,
		Classes:      services.Class,

		Logger:         log,
		Pinger:         pool,
		Metrics:        metrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		LoginLimiter:   middleware.NewRateLimiter(loginRateRequests, loginRateWindow),
	})

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
		pool:       pool,
	}, nil
}

// bootstrapAdmin creates the admin account if the config asks for one.
// An already existing account is fine, anything else is fatal
func bootstrapAdmin(ctx context.Context, c *Config, authService *auth.AuthService, log logger.Logger) error {
	if c.AdminUsername == "" || c.AdminPassword == "" {
		return nil
	}

	_, _, err := authService.Register(ctx, c.AdminUsername, c.AdminPassword, []string{models.RoleAdmin})
	switch {
	case err == nil:
		log.Info("Admin account created", "username", c.AdminUsername)
		return nil
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		return nil
	default:
		return fmt.Errorf("error while bootstrapping admin account. Err: %w", err)
	}
}

func (s *ServerApp) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	sentry.Flush(2 * time.Second)
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nlebedev/discotek/internal/db"
	"github.com/nlebedev/discotek/internal/handlers"
	"github.com/nlebedev/discotek/internal/handlers/middleware"
	"github.com/nlebedev/discotek/internal/logger"
	"github.com/nlebedev/discotek/internal/repository/postgres"
	"github.com/nlebedev/discotek/internal/service/album"
	"github.com/nlebedev/discotek/internal/service/auth"
	"github.com/nlebedev/discotek/internal/service/auth/tokenmanager"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
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
		AccessSecret:  c.JWTSecret,
		RefreshSecret: c.RefreshSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	authService, err := auth.NewService(
		auth.Config{SecureCookie: c.Environment == logger.EnvProduction},
		tokenManager,
		storage.User(),
	)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}

	albumService, err := album.NewService(storage.Album())
	if err != nil {
		return nil, fmt.Errorf("error while creating album service. Err: %w", err)
	}

	// Initialize handlers
	mux := handlers.NewRouter(
		handlers.NewAuth(authService),
		handlers.NewAlbum(albumService),
		middleware.AuthMiddleware(authService),
		middleware.LoggerMiddleware(log),
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
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
	slog.Info("Starting server", "addr", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plaintext/cmd/app"
	"plaintext/internal/config"
	handlers "plaintext/internal/handler"
	"plaintext/internal/logger"
	"plaintext/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	logger.InitLogger(cfg.LogLevel)

	db, services := app.App(cfg)
	defer func() {
		if err := db.CloseDB(); err != nil {
			logger.Warningf("failed to close database: %v", err)
		}
	}()

	handler := handlers.NewHandlers(services, cfg)

	router := handlers.NewRouter(handler)
	router.Use(middleware.AccessPolicy(handlers.RouteClass))

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(services.Auth),
		middleware.TimeoutMiddleware(cfg.RequestTimeout),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
		middleware.LoggingMiddleware,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 5 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("server listening on %s, database %s", srv.Addr, cfg.DB.DbNAME)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}

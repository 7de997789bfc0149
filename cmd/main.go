package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe_service/internal/config"
	"recipe_service/internal/handlers"
	"recipe_service/internal/logger"
	"recipe_service/internal/metrics"
	"recipe_service/internal/repository"
	"recipe_service/internal/repository/db"
	"recipe_service/internal/server"
	"recipe_service/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       Recipes API
// @version                     1.0
// @description                 Recipe collection behind username/password login.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml + RECIPES_* env
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.New(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.AuthConfig{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
	}, log)
	apiHandler := handlers.NewHandler(services, log, metrics.New())

	if cfg.Auth.HasAdmin() {
		bootstrapAdmin(services, cfg.Auth, log)
	}

	srv := &server.Server{}
	runHTTPServer(srv, cfg, apiHandler, log)

	waitForShutdown(srv, log)
}

// bootstrapAdmin creates the configured user on first start.
func bootstrapAdmin(services *service.Service, auth config.Auth, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, created, err := services.EnsureUser(ctx, auth.Admin.Username, auth.Admin.Password)
	if err != nil {
		log.Fatalw("failed to bootstrap admin user", "err", err, "username", auth.Admin.Username)
	}
	if created {
		log.Infow("admin user created", "id", id, "username", auth.Admin.Username)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg config.Config, handler *handlers.Handler, log *logger.Logger) {
	timeouts := server.Timeouts{
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
	}
	go func() {
		log.Infow("starting server", "port", cfg.Port)
		if err := srv.Run(cfg.Port, handler.InitRoutes(), timeouts); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-api/internal/database"
	"github.com/taiwoajasa245/bible-api/internal/server"
	"github.com/taiwoajasa245/bible-api/pkg/config"
	"github.com/taiwoajasa245/bible-api/pkg/logger"
)

var CLI struct {
	EnvFile []string `name:"env-file" help:"Env files to load instead of .env.<APP_ENV>"`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Start the HTTP API server"`
	Health HealthCmd `cmd:"" help:"Check database connectivity and exit"`
}

type ServeCmd struct {
	Port      string `help:"HTTP server port (overrides PORT)"`
	Bootstrap bool   `help:"Create the verse table if it does not exist (overrides DB_BOOTSTRAP)"`
}

func (c *ServeCmd) Run() error {
	cfg := config.LoadConfig(CLI.EnvFile...)
	if c.Port != "" {
		cfg.Port = c.Port
	}
	if c.Bootstrap {
		cfg.DBBootstrap = true
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	srv, err := server.NewServer(db, cfg, log)
	if err != nil {
		return err
	}
	httpServer := srv.HTTPServer()

	done := make(chan struct{})
	go gracefulShutdown(httpServer, log, done)

	log.Info("server listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.AppEnv))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	<-done
	log.Info("graceful shutdown complete")
	return nil
}

type HealthCmd struct{}

func (c *HealthCmd) Run() error {
	cfg := config.LoadConfig(CLI.EnvFile...)

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	stats := db.Health()
	for k, v := range stats {
		fmt.Printf("%s: %s\n", k, v)
	}
	if stats["status"] != "up" {
		return errors.New("database is down")
	}
	return nil
}

func gracefulShutdown(apiServer *http.Server, log *zap.Logger, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	close(done)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bible-api"),
		kong.Description("Bible verse REST API"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

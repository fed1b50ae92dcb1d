package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/khlegal/practice-api/internal/api"
	"github.com/khlegal/practice-api/internal/config"
	"github.com/khlegal/practice-api/internal/db"
	"github.com/khlegal/practice-api/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	conn, err := db.ConnectAndMigrate(db.Options{
		DSN:        cfg.DatabaseDSN,
		Migrations: cfg.Migrations,
		Debug:      cfg.DBDebug,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}

	e := api.New(cfg, conn)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

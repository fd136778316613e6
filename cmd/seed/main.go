package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/javialvarezdrive/gym-policia-local/internal/booking"
	"github.com/javialvarezdrive/gym-policia-local/internal/config"
	"github.com/javialvarezdrive/gym-policia-local/internal/repository"
	"github.com/javialvarezdrive/gym-policia-local/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect; ping to fail fast on a bad DSN.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	service := booking.NewService(repo, true)

	seed.SeedDemoData(context.Background(), cfg, service)
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/config"
	"github.com/fleetops-dev/plan-manager/backend/internal/repository"
	"github.com/fleetops-dev/plan-manager/backend/internal/seed"
	"github.com/fleetops-dev/plan-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: random users, 2: random routes, 3: random resources, 4: demo dataset)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		slog.Error("failed to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, so ping before doing any work
	if err := dbpool.PingContext(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("number of users must be positive")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("failed to generate random user", "error", err)
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("failed to insert user", "error", err)
				continue
			}

			cnt++
		}

		slog.Info("inserted users", "count", cnt)
	case 2:
		if n <= 0 {
			slog.Error("number of routes must be positive")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			route := utils.GenerateRandomRoute()
			if err := repo.CreateRoute(route); err != nil {
				slog.Error("failed to insert route", "error", err)
				continue
			}

			cnt++
		}

		slog.Info("inserted routes", "count", cnt)
	case 3:
		if n <= 0 {
			slog.Error("number of resources must be positive")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			resource := utils.GenerateRandomResource()
			if err := repo.CreateResource(resource); err != nil {
				slog.Error("failed to insert resource", "error", err)
				continue
			}

			cnt++
		}

		slog.Info("inserted resources", "count", cnt)
	case 4:
		seed.SeedDemoData(repo, cfg.Seed.User.Password, cfg.Email.UserDomain)
	default:
		slog.Error("unknown operation", "op", op)
	}
}

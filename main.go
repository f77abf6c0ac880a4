package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gocopula/adapters/postgres"
	"gocopula/app"
	"gocopula/internal"
	"gocopula/internal/api"
	"gocopula/internal/config"
	"gocopula/internal/errors"
	"gocopula/internal/reorder"
	"gocopula/ports"
)

// initDatabase connects to PostgreSQL and ensures the run schema exists
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if _, err := db.Exec(postgres.Schema); err != nil {
		return nil, errors.Wrap(err, "failed to ensure run schema")
	}
	return db, nil
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	reorderer := reorder.NewReorderer()
	if err := reorderer.SetTiePolicy(cfg.Reorder.TiePolicy); err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	reorderer.SetWorkers(cfg.Reorder.Workers)

	var runs ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := initDatabase(cfg)
		if err != nil {
			log.Fatalf("database error: %v", err)
		}
		defer db.Close()
		runs = postgres.NewRunRepository(db)
		logger.Info("run persistence enabled")
	} else {
		logger.Warn("DATABASE_URL not set - runs will not be persisted")
	}

	service := app.NewReorderService(reorderer, runs, logger)
	service.SetTailQuantile(cfg.Reorder.TailQuantile)

	server := api.NewServer(service, logger)
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main // seed loads placeholder data into the configured database

import (
	"context"
	"time"

	"github.com/iliyamo/invoice-dashboard/internal/config"
	"github.com/iliyamo/invoice-dashboard/internal/database"
	"github.com/iliyamo/invoice-dashboard/internal/seed"
	"github.com/iliyamo/invoice-dashboard/internal/utils"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	log := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	params := database.Params{User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName}
	if err := database.RunMigrations(params); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	db, err := database.Open(params)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := seed.Run(ctx, db, cfg.BcryptCost, log); err != nil {
		log.WithError(err).Fatal("seed")
	}
}

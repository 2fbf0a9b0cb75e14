package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/devconnector/backend/config"
	"github.com/devconnector/backend/internal/database"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing SQL migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	if err := database.RunMigrations(db, *dir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Info("migrations complete")
}

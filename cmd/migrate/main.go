package main

import (
	"log"
	"os"

	"printdoot/internal/config"
	"printdoot/internal/migrate"
	"printdoot/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	db, err := store.Open(cfg.StorePath)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer db.Close()

	if err := migrate.Apply(db); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	version, err := migrate.Version(db)
	if err != nil {
		logger.Fatalf("read schema version: %v", err)
	}
	logger.Printf("migrations applied, schema version %d", version)
}

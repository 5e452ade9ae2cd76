package main

import (
	"context"
	"log"
	"os"

	"printdoot/internal/config"
	"printdoot/internal/migrate"
	catalogrepo "printdoot/internal/repository/catalog"
	"printdoot/internal/seed"
	"printdoot/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	db, err := store.Open(cfg.StorePath)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer db.Close()

	if err := migrate.Apply(db); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	if err := seed.Apply(ctx, catalogrepo.NewBolt(db)); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}

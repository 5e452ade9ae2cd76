package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"printdoot/internal/config"
	"printdoot/internal/migrate"
	designrepo "printdoot/internal/repository/design"
	"printdoot/internal/store"

	"github.com/joho/godotenv"
)

// Dumps saved design composites to PNG files for print handoff.
func main() {
	var (
		outDir    string
		productID string
	)
	flag.StringVar(&outDir, "out", "designs-out", "Directory to write PNG files into")
	flag.StringVar(&productID, "product", "", "Only export designs for this product")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.FromEnv()
	ctx := context.Background()

	db, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	if err := migrate.Apply(db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	repo := designrepo.NewBolt(db)
	designs, err := repo.All(ctx)
	if err != nil {
		log.Fatalf("list designs: %v", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	written := 0
	for _, d := range designs {
		if productID != "" && d.ProductID != productID {
			continue
		}
		if len(d.Composite) == 0 {
			continue
		}
		path := filepath.Join(outDir, d.ID+".png")
		if err := os.WriteFile(path, d.Composite, 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		written++
	}

	fmt.Printf("Exported %d designs to %s\n", written, outDir)
}

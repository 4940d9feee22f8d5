// Command seed loads the built-in peptide catalog and effect taxonomy into
// the configured database.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/peptitrace/backend/config"
	"github.com/peptitrace/backend/internal/database"
	"github.com/peptitrace/backend/internal/service"
)

func main() {
	clear := flag.Bool("clear", false, "clear seeded data instead of loading it")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	seeds := service.NewSeedService(db)

	if *clear {
		peptides, err := seeds.ClearPeptides(ctx)
		if err != nil {
			log.Fatalf("failed to clear peptides: %v", err)
		}
		effects, err := seeds.ClearEffects(ctx)
		if err != nil {
			log.Fatalf("failed to clear effects: %v", err)
		}
		log.Printf("cleared %d peptides and %d effects", peptides.Deleted, effects.Deleted)
		return
	}

	peptides, err := seeds.SeedPeptides(ctx)
	if err != nil {
		log.Fatalf("failed to seed peptides: %v", err)
	}
	effects, err := seeds.SeedEffects(ctx)
	if err != nil {
		log.Fatalf("failed to seed effects: %v", err)
	}
	log.Printf("seeded %d peptides and %d effects", peptides.Inserted, effects.Inserted)
}

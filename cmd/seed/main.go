package main

import (
	"context"
	"flag"
	"log"
	"os"

	"importdocs/internal/app"
	"importdocs/internal/config"
	"importdocs/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dir := flag.String("dir", "", "Directory laid out as Suppliers/<supplier>/<shipment>/<file> and Folders/<folder>/<file>")
	docType := flag.String("doc-type", "Sample", "Document type recorded for every seeded file")
	clearData := flag.Bool("clear-data", false, "Delete all suppliers and folders (with their documents) before seeding")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *clearData {
		log.Fatalf("BLOCKED: Cannot run --clear-data in production environment")
	}
	if *dir == "" && !*clearData {
		flag.Usage()
		os.Exit(2)
	}

	logger := config.NewLogger(cfg.Environment, os.Stdout)

	ctx := context.Background()
	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open stores: %v", err)
	}
	defer stores.Close()

	services := app.NewServices(stores, app.NewConverter(cfg, logger), logger)
	seeder := seed.NewSeeder(services.Suppliers, services.Shipments, services.Folders, services.Documents, *docType, logger)

	if *clearData {
		if err := seeder.ClearData(ctx); err != nil {
			stores.Close()
			log.Fatalf("Failed to clear data: %v", err)
		}
	}

	if *dir == "" {
		return
	}

	result, err := seeder.SeedDirectory(ctx, *dir)
	if err != nil {
		stores.Close()
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d suppliers, %d shipments, %d folders, %d documents (%d failed)",
		result.Suppliers, result.Shipments, result.Folders, result.Documents, result.Failed)
}

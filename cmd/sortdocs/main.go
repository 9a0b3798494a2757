package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/kustudyhub/kustudyhub-api/internal/config"
	"github.com/kustudyhub/kustudyhub-api/internal/database"
	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"github.com/kustudyhub/kustudyhub-api/internal/services"
	"github.com/kustudyhub/kustudyhub-api/internal/sorter"
	"github.com/kustudyhub/kustudyhub-api/internal/unitmap"
)

func main() {
	runSort := flag.Bool("sort", true, "run the sorting pipeline over all ingestion sources")
	runMaintenance := flag.Bool("maintenance", false, "run database cleanup: purge malformed units, trim codes, retitle from the canonical table")
	reindex := flag.Bool("reindex", true, "index sorted units and documents in Meilisearch after the run")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	table, err := unitmap.Load()
	if err != nil {
		log.Fatalf("Failed to load unit tables: %v", err)
	}

	ctx := context.Background()

	if *runSort {
		storageService, err := services.NewStorageService(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize storage service: %v", err)
		}

		store := database.NewStore(db)
		relocator := sorter.NewRelocator(cfg.SortedDir, storageService, store)
		classifier := sorter.NewClassifier(table)
		converter := sorter.NewSofficeConverter(cfg.SofficePath)
		events := services.NewEventService(db)

		pipeline := sorter.NewPipeline(sorter.Options{
			UnsortedDir:   cfg.UnsortedDir,
			SortedDir:     cfg.SortedDir,
			IndividualDir: cfg.IndividualDir,
			FacultyDir:    cfg.FacultyDir,
		}, relocator, classifier, converter, events)

		report := pipeline.Run(ctx)

		log.Printf("\nSort Summary:")
		log.Printf("  Sorted:  %d", len(report.Sorted))
		log.Printf("  Skipped: %d", len(report.Skipped))
		log.Printf("  Failed:  %d", len(report.Failed))
		for _, f := range report.Failed {
			log.Printf("    %s (%s): %s", f.Path, f.UnitCode, f.Reason)
		}
	}

	if *runMaintenance {
		deleted, err := database.DeleteMalformedUnits(db)
		if err != nil {
			log.Printf("Malformed-unit cleanup failed: %v", err)
		} else {
			log.Printf("Deleted %d malformed units", deleted)
		}

		trimmed, err := database.TrimUnitCodes(db)
		if err != nil {
			log.Printf("Code trimming failed: %v", err)
		} else {
			log.Printf("Trimmed %d unit codes", trimmed)
		}

		retitled, err := database.RetitleUnits(db, table)
		if err != nil {
			log.Printf("Retitling failed: %v", err)
		} else {
			log.Printf("Retitled %d units", retitled)
		}
	}

	if *reindex {
		searchService := services.NewSearchService(cfg)

		var units []models.UnitProfile
		if err := db.Find(&units).Error; err != nil {
			log.Printf("Failed to fetch units for indexing: %v", err)
		} else if err := searchService.IndexUnits(units); err != nil {
			log.Printf("Failed to index units: %v", err)
		} else {
			log.Printf("Indexed %d units in Meilisearch", len(units))
		}
	}

	log.Println("Done.")
}

package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kustudyhub/kustudyhub-api/internal/config"
	"github.com/kustudyhub/kustudyhub-api/internal/database"
	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"github.com/kustudyhub/kustudyhub-api/internal/services"
)

func main() {
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

	// Initialize search service
	searchService := services.NewSearchService(cfg)
	log.Println("Meilisearch service initialized")

	// Index all units first
	var units []models.UnitProfile
	if err := db.Find(&units).Error; err != nil {
		log.Fatalf("Failed to fetch units: %v", err)
	}
	if err := searchService.IndexUnits(units); err != nil {
		log.Printf("Failed to index units: %v", err)
	} else {
		log.Printf("Indexed %d units", len(units))
	}

	// Get counts
	var dbCount int64
	if err := db.Model(&models.UnitDocument{}).Count(&dbCount).Error; err != nil {
		log.Fatalf("Failed to get document count from DB: %v", err)
	}

	meiliCount, err := searchService.GetDocumentCount()
	if err != nil {
		log.Fatalf("Failed to get document count from Meilisearch: %v", err)
	}

	log.Printf("Documents in DB: %d", dbCount)
	log.Printf("Documents in Meilisearch: %d", meiliCount)

	if meiliCount == dbCount {
		log.Println("Counts match. Verifying all documents are indexed...")
	} else {
		log.Println("Counts do not match. Reindexing all documents...")
	}

	// Fetch all documents in batches, joined with their unit code so the
	// index can filter on it
	batchSize := 100
	var offset int
	totalIndexed := 0

	for {
		var documents []models.UnitDocument
		err := db.Model(&models.UnitDocument{}).
			Select("unit_documents.*, unit_profiles.code AS unit_code").
			Joins("JOIN unit_profiles ON unit_profiles.id = unit_documents.unit_id").
			Limit(batchSize).Offset(offset).
			Find(&documents).Error
		if err != nil {
			log.Fatalf("Failed to fetch documents: %v", err)
		}

		if len(documents) == 0 {
			break
		}

		if err := searchService.IndexDocuments(documents); err != nil {
			log.Printf("Failed to index batch (offset %d): %v", offset, err)
		} else {
			totalIndexed += len(documents)
			log.Printf("Indexed batch of %d documents (total: %d)", len(documents), totalIndexed)
		}

		offset += batchSize
		time.Sleep(100 * time.Millisecond) // Be nice to Meilisearch
	}

	// Final check
	finalMeiliCount, err := searchService.GetDocumentCount()
	if err != nil {
		log.Printf("Failed to get final count: %v", err)
	}

	log.Printf("Reindexing completed.")
	log.Printf("Final Meilisearch count: %d", finalMeiliCount)
}

package router

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kustudyhub/kustudyhub-api/internal/config"
	"github.com/kustudyhub/kustudyhub-api/internal/database"
	"github.com/kustudyhub/kustudyhub-api/internal/handlers"
	"github.com/kustudyhub/kustudyhub-api/internal/middleware"
	"github.com/kustudyhub/kustudyhub-api/internal/services"
	"github.com/kustudyhub/kustudyhub-api/internal/sorter"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize Services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage service: %v", err)
	}

	searchService := services.NewSearchService(cfg)
	eventService := services.NewEventService(db)

	store := database.NewStore(db)
	relocator := sorter.NewRelocator(cfg.SortedDir, storageService, store)
	converter := sorter.NewSofficeConverter(cfg.SofficePath)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize rate limiter: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(db))

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Units
		api.GET("/units", handlers.ListUnits(db))
		api.GET("/units/search", handlers.SearchUnits(searchService))
		api.GET("/units/:id", handlers.GetUnit(db))
		api.GET("/units/:id/documents", handlers.ListUnitDocuments(db))

		// Documents
		api.GET("/documents/:id/download", handlers.DownloadDocument(db))

		// Uploads, rate limited per IP
		uploads := api.Group("")
		if rateLimiter != nil {
			uploads.Use(rateLimiter.RateLimitByIP(30, 3600))
		}
		{
			uploads.POST("/documents", handlers.UploadDocument(cfg, relocator, converter, searchService))
			uploads.POST("/documents/batch", handlers.BatchUploadDocuments(cfg, relocator, converter, searchService))
		}

		// Sort diagnostics
		api.GET("/events/recent", handlers.GetRecentSortEvents(eventService))

		// Search
		api.GET("/search", handlers.Search(searchService))
	}

	return r
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"github.com/kustudyhub/kustudyhub-api/internal/services"
	"gorm.io/gorm"
)

// ListUnits returns all units, optionally filtered by code prefix.
func ListUnits(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var units []models.UnitProfile

		query := db.Order("code asc")
		if prefix := c.Query("code_prefix"); prefix != "" {
			query = query.Where("code LIKE ?", prefix+"%")
		}

		if err := query.Find(&units).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch units",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    units,
		})
	}
}

// SearchUnits queries the units index by code or title.
func SearchUnits(search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := search.SearchUnits(c.Query("q"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Search failed",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result.Hits,
		})
	}
}

// GetUnit returns a single unit by ID.
func GetUnit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		unitID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ID",
					"message": "Invalid unit ID format",
				},
			})
			return
		}

		var unit models.UnitProfile
		if err := db.First(&unit, "id = ?", unitID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Unit not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch unit",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    unit,
		})
	}
}

// ListUnitDocuments returns the documents belonging to one unit.
func ListUnitDocuments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var unit models.UnitProfile
		if err := db.First(&unit, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Unit not found",
				},
			})
			return
		}

		var documents []models.UnitDocument
		if err := db.Where("unit_id = ?", unit.ID).
			Order("created_at desc").
			Find(&documents).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch documents",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    documents,
		})
	}
}

package database

import (
	"log"
	"strings"

	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"github.com/kustudyhub/kustudyhub-api/internal/unitmap"
	"gorm.io/gorm"
)

// MaxUnitCodeLength is the longest plausible unit code (4 letters + 3
// digits). Anything longer in the table is garbage left by earlier bad
// sorting runs and gets purged.
const MaxUnitCodeLength = 7

// DeleteMalformedUnits removes every unit whose code exceeds
// MaxUnitCodeLength, together with its documents. Returns the number of
// units deleted.
func DeleteMalformedUnits(db *gorm.DB) (int64, error) {
	var units []models.UnitProfile
	if err := db.Where("length(code) > ?", MaxUnitCodeLength).Find(&units).Error; err != nil {
		return 0, err
	}

	var deleted int64
	for _, unit := range units {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("unit_id = ?", unit.ID).Delete(&models.UnitDocument{}).Error; err != nil {
				return err
			}
			return tx.Delete(&unit).Error
		})
		if err != nil {
			log.Printf("Failed to delete malformed unit %q: %v", unit.Code, err)
			continue
		}
		log.Printf("Deleted malformed unit %q and its documents", unit.Code)
		deleted++
	}
	return deleted, nil
}

// TrimUnitCodes strips stray whitespace from stored unit codes. Returns
// the number of units fixed.
func TrimUnitCodes(db *gorm.DB) (int64, error) {
	var units []models.UnitProfile
	if err := db.Find(&units).Error; err != nil {
		return 0, err
	}

	var fixed int64
	for _, unit := range units {
		trimmed := strings.TrimSpace(unit.Code)
		if trimmed == unit.Code {
			continue
		}
		if err := db.Model(&unit).Update("code", trimmed).Error; err != nil {
			log.Printf("Failed to trim code %q: %v", unit.Code, err)
			continue
		}
		fixed++
	}
	return fixed, nil
}

// RetitleUnits re-assigns unit titles from the canonical title table
// wherever a stored code matches a known entry. Units created by the
// sorter start with title == code; this pass gives them display names.
func RetitleUnits(db *gorm.DB, table *unitmap.Table) (int64, error) {
	var units []models.UnitProfile
	if err := db.Find(&units).Error; err != nil {
		return 0, err
	}

	var updated int64
	for _, unit := range units {
		title, ok := table.TitleForCode(unit.Code)
		if !ok || title == unit.Title {
			continue
		}
		if err := db.Model(&unit).Update("title", title).Error; err != nil {
			log.Printf("Failed to retitle unit %s: %v", unit.Code, err)
			continue
		}
		updated++
	}
	return updated, nil
}

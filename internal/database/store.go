package database

import (
	"fmt"

	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"gorm.io/gorm"
)

// Store wraps the unit/document persistence the sort pipeline needs.
// It satisfies sorter.Store.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetOrCreateUnit returns the unit with the given code, creating it with
// defaultTitle on first encounter.
func (s *Store) GetOrCreateUnit(code, defaultTitle string) (*models.UnitProfile, error) {
	var unit models.UnitProfile
	err := s.db.Where("code = ?", code).First(&unit).Error
	if err == nil {
		return &unit, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("error checking for unit %s: %w", code, err)
	}

	unit = models.UnitProfile{
		Code:  code,
		Title: defaultTitle,
	}
	if err := s.db.Create(&unit).Error; err != nil {
		return nil, fmt.Errorf("failed to create unit %s: %w", code, err)
	}
	return &unit, nil
}

func (s *Store) CreateDocument(doc *models.UnitDocument) error {
	return s.db.Create(doc).Error
}

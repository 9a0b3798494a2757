package services

import (
	"log"

	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"gorm.io/gorm"
)

// EventService persists per-file sort outcomes. It satisfies
// sorter.EventSink; a failed insert is logged and dropped so diagnostics
// can never break the pipeline they describe.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

func (s *EventService) Record(event models.SortEvent) {
	if err := s.db.Create(&event).Error; err != nil {
		log.Printf("Failed to record sort event for %s: %v", event.Path, err)
	}
}

func (s *EventService) GetRecentEvents(limit int) ([]models.SortEvent, error) {
	var events []models.SortEvent
	err := s.db.Order("created_at desc").
		Limit(limit).
		Find(&events).Error
	return events, err
}

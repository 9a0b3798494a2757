package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SortEventType string

const (
	SortEventSorted        SortEventType = "document_sorted"
	SortEventSkipped       SortEventType = "document_skipped"
	SortEventFailed        SortEventType = "document_failed"
	SortEventFolderSkipped SortEventType = "folder_skipped"
)

// SortEvent records the outcome of one file (or one faculty folder) in a
// pipeline run so failures can be reviewed after the fact.
type SortEvent struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	EventType SortEventType `gorm:"type:varchar(50);not null;index" json:"event_type"`
	Path      string        `gorm:"size:1000;not null" json:"path"`
	UnitCode  string        `gorm:"size:20;index" json:"unit_code,omitempty"`
	Detail    string        `gorm:"type:text" json:"detail,omitempty"`
	CreatedAt time.Time     `gorm:"index" json:"created_at"`
}

func (SortEvent) TableName() string {
	return "sort_events"
}

func (e *SortEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}

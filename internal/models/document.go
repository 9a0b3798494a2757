package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitDocument struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UnitID    uuid.UUID `gorm:"type:uuid;not null;index" json:"unit_id"`
	Title     string    `gorm:"size:1000;not null" json:"title"`
	Link      string    `gorm:"size:2000" json:"link"`
	SizeKB    int64     `gorm:"not null" json:"size_kb"`
	PageCount *int      `json:"page_count,omitempty"`
	Date      time.Time `gorm:"type:date" json:"date"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relations
	Unit UnitProfile `gorm:"foreignKey:UnitID" json:"unit,omitempty"`

	// Populated by joins for search indexing, not a column
	UnitCode string `gorm:"->;-:migration" json:"unit_code,omitempty"`
}

func (UnitDocument) TableName() string {
	return "unit_documents"
}

func (d *UnitDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Date.IsZero() {
		d.Date = time.Now()
	}
	return nil
}

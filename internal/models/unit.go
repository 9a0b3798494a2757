package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code      string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Title     string    `gorm:"size:200" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Documents []UnitDocument `gorm:"foreignKey:UnitID" json:"documents,omitempty"`
}

func (UnitProfile) TableName() string {
	return "unit_profiles"
}

func (u *UnitProfile) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

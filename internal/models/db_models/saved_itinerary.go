package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// SavedItinerary is a generated plan a user kept for later.
type SavedItinerary struct {
	BaseModel
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null"`
	Destination string         `gorm:"not null"`
	Title       string         `gorm:"size:255"`
	StartDate   string         `gorm:"size:10"`
	EndDate     string         `gorm:"size:10"`
	Language    string         `gorm:"size:2"`
	Themes      pq.StringArray `gorm:"type:text[]"`
	Plan        datatypes.JSON `gorm:"type:jsonb;not null"`
}

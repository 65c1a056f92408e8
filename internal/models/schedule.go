package models

import (
	"gorm.io/datatypes"
)

type Schedule struct {
	BaseModel

	EventType   string         `gorm:"not null" json:"event_type"` // "Game", "Training", etc.
	EventDate   datatypes.Date `gorm:"not null" json:"event_date"`
	StartTime   datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime     datatypes.Time `gorm:"not null" json:"end_time"`
	Location    string         `gorm:"not null" json:"location"`
	Description string         `json:"description"`
	TeamID      uint           `gorm:"not null;index" json:"team_id"`

	// Relationships
	Team Team `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

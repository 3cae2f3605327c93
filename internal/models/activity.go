package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog captures auditable mutations performed by tutors.
type ActivityLog struct {
	ID         string            `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID    string            `gorm:"type:uuid;not null;index" json:"actorId"`
	Action     string            `gorm:"size:64;not null" json:"action"`
	EntityType string            `gorm:"size:64;not null" json:"entityType"`
	EntityID   string            `gorm:"type:uuid" json:"entityId"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// BeforeCreate assigns a UUID when none was provided.
func (a *ActivityLog) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

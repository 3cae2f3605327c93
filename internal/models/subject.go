package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subject is a course category owned by a tutor. It groups an ordered
// sequence of topics and zero or more assignments.
type Subject struct {
	ID          string       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Description *string      `gorm:"type:text" json:"description"`
	Icon        *string      `gorm:"size:64" json:"icon"`
	Color       *string      `gorm:"size:32" json:"color"`
	TutorID     string       `gorm:"type:uuid;not null;index" json:"tutorId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Topics      []Topic      `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"topics"`
	Assignments []Assignment `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID when none was provided.
func (s *Subject) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Topic is a named grouping inside a subject. Order is assigned at append
// time as the current sibling count; no renumbering ever happens.
type Topic struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Order     int    `gorm:"column:sort_order;not null" json:"order"`
	SubjectID string `gorm:"type:uuid;not null;index" json:"subjectId"`
}

// BeforeCreate assigns a UUID when none was provided.
func (t *Topic) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

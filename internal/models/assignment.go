package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment statuses. Transitions are unconstrained; any valid status may
// replace any other.
const (
	StatusDraft     = "DRAFT"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusArchived  = "ARCHIVED"
)

// Problem difficulties.
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

// Assignment is a homework unit owned by a tutor within a subject.
type Assignment struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `gorm:"size:16;not null;default:DRAFT" json:"status"`
	TutorID     string     `gorm:"type:uuid;not null;index" json:"tutorId"`
	SubjectID   string     `gorm:"type:uuid;not null;index" json:"subjectId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Subject     *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Problems    []Problem  `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID when none was provided.
func (a *Assignment) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Problem is a single exercise within an assignment. The topic reference is
// optional and nulled when the topic is deleted.
type Problem struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	Question     string  `gorm:"type:text;not null" json:"question"`
	Answer       *string `gorm:"type:text" json:"answer"`
	Difficulty   string  `gorm:"size:16;not null;default:MEDIUM" json:"difficulty"`
	Order        int     `gorm:"column:sort_order;not null" json:"order"`
	TopicID      *string `gorm:"type:uuid;index" json:"topicId"`
	AssignmentID string  `gorm:"type:uuid;not null;index" json:"assignmentId"`
}

// BeforeCreate assigns a UUID when none was provided.
func (p *Problem) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

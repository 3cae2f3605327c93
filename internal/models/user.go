package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleTutor   = "TUTOR"
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// User represents an identity record. Users are created on first
// authentication (upsert by email) and never deleted through the API.
type User struct {
	ID          string       `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Avatar      *string      `gorm:"size:512" json:"avatar"`
	Role        string       `gorm:"size:16;not null;default:TUTOR" json:"role"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Subjects    []Subject    `gorm:"foreignKey:TutorID" json:"-"`
	Assignments []Assignment `gorm:"foreignKey:TutorID" json:"-"`
}

// BeforeCreate assigns a UUID when none was provided.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

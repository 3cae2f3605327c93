package dto

import (
	"time"

	"github.com/noah-isme/tesuto-go-api/internal/models"
)

// AuthRequest is the payload for the find-or-create authentication endpoint.
type AuthRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Name   string  `json:"name" validate:"required,min=1"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
	Role   *string `json:"role" validate:"omitempty,oneof=TUTOR STUDENT ADMIN"`
}

// UserCounts mirrors the relation counts attached to user payloads.
type UserCounts struct {
	Subjects    int64 `json:"subjects"`
	Assignments int64 `json:"assignments"`
}

// UserResponse is the serialized representation of a user.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Avatar    *string     `json:"avatar"`
	Role      string      `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Count     *UserCounts `json:"_count,omitempty"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Email:     model.Email,
		Name:      model.Name,
		Avatar:    model.Avatar,
		Role:      model.Role,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewUserResponseWithCounts converts a model into a DTO carrying relation
// counts.
func NewUserResponseWithCounts(model models.User, subjects, assignments int64) UserResponse {
	response := NewUserResponse(model)
	response.Count = &UserCounts{Subjects: subjects, Assignments: assignments}
	return response
}

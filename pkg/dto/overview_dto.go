package dto

import (
	"time"

	"github.com/noah-isme/tesuto-go-api/internal/models"
)

// OverviewResponse aggregates the numbers rendered on the tutor dashboard.
type OverviewResponse struct {
	Subjects            int64                `json:"subjects"`
	Assignments         int64                `json:"assignments"`
	Problems            int64                `json:"problems"`
	AssignmentsByStatus map[string]int64     `json:"assignmentsByStatus"`
	RecentAssignments   []AssignmentResponse `json:"recentAssignments"`
}

// ActivityResponse is the serialized representation of an audit entry.
type ActivityResponse struct {
	ID         string                 `json:"id"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityId"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// NewActivityResponse converts a model into a DTO.
func NewActivityResponse(model models.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:         model.ID,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Metadata:   model.Metadata,
		CreatedAt:  model.CreatedAt,
	}
}

// NewActivityResponseSlice converts a slice of models into DTOs.
func NewActivityResponseSlice(entries []models.ActivityLog) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewActivityResponse(entry))
	}

	return responses
}

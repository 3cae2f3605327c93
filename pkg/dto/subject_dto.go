package dto

import (
	"time"

	"github.com/noah-isme/tesuto-go-api/internal/models"
)

// SubjectCreateRequest describes the payload for creating a subject,
// optionally together with its initial topics.
type SubjectCreateRequest struct {
	Name        string   `json:"name" validate:"required,min=1"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon"`
	Color       *string  `json:"color"`
	TutorID     string   `json:"tutorId" validate:"required"`
	Topics      []string `json:"topics" validate:"omitempty,dive,min=1"`
}

// SubjectUpdateRequest describes a partial subject update. Ownership and
// topics are never updated through this payload.
type SubjectUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
}

// TopicCreateRequest describes the payload for appending a topic.
type TopicCreateRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// TopicResponse is the serialized representation of a topic.
type TopicResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	SubjectID string `json:"subjectId"`
}

// SubjectCounts mirrors the relation counts attached to subject payloads.
type SubjectCounts struct {
	Assignments int64 `json:"assignments"`
}

// SubjectResponse is the serialized representation of a subject.
type SubjectResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Icon        *string         `json:"icon"`
	Color       *string         `json:"color"`
	TutorID     string          `json:"tutorId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Topics      []TopicResponse `json:"topics"`
	Count       *SubjectCounts  `json:"_count,omitempty"`
}

// SubjectSummary is the trimmed subject representation embedded in
// assignment listings.
type SubjectSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// SubjectDetailResponse additionally carries the subject's assignments.
type SubjectDetailResponse struct {
	SubjectResponse
	Assignments []AssignmentResponse `json:"assignments"`
}

// NewTopicResponse converts a model into a DTO.
func NewTopicResponse(model models.Topic) TopicResponse {
	return TopicResponse{
		ID:        model.ID,
		Name:      model.Name,
		Order:     model.Order,
		SubjectID: model.SubjectID,
	}
}

// NewTopicResponseSlice converts a slice of models into DTOs.
func NewTopicResponseSlice(topics []models.Topic) []TopicResponse {
	responses := make([]TopicResponse, 0, len(topics))
	for _, topic := range topics {
		responses = append(responses, NewTopicResponse(topic))
	}

	return responses
}

// NewSubjectResponse converts a model into a DTO, including its topics.
func NewSubjectResponse(model models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Icon:        model.Icon,
		Color:       model.Color,
		TutorID:     model.TutorID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		Topics:      NewTopicResponseSlice(model.Topics),
	}
}

// NewSubjectSummary converts a model into the trimmed representation embedded
// in assignment listings.
func NewSubjectSummary(model models.Subject) SubjectSummary {
	return SubjectSummary{
		ID:    model.ID,
		Name:  model.Name,
		Icon:  model.Icon,
		Color: model.Color,
	}
}

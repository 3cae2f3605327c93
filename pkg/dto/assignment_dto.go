package dto

import (
	"time"

	"github.com/noah-isme/tesuto-go-api/internal/models"
)

// ProblemInput describes a single problem supplied on assignment creation or
// appended later. Difficulty defaults to MEDIUM when absent.
type ProblemInput struct {
	Question   string  `json:"question" validate:"required,min=1"`
	Answer     *string `json:"answer"`
	Difficulty *string `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	TopicID    *string `json:"topicId"`
}

// AssignmentCreateRequest describes the payload for creating an assignment,
// optionally together with its initial problems.
type AssignmentCreateRequest struct {
	Title       string         `json:"title" validate:"required,min=1"`
	Description *string        `json:"description"`
	DueDate     *string        `json:"dueDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status      *string        `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE COMPLETED ARCHIVED"`
	TutorID     string         `json:"tutorId" validate:"required"`
	SubjectID   string         `json:"subjectId" validate:"required"`
	Problems    []ProblemInput `json:"problems" validate:"omitempty,dive"`
}

// AssignmentUpdateRequest describes a partial assignment update. Ownership
// and subject are never updated through this payload.
type AssignmentUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status      *string `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE COMPLETED ARCHIVED"`
}

// AddProblemsRequest describes the payload for appending problems to an
// existing assignment. An empty list is accepted and appends nothing.
type AddProblemsRequest struct {
	Problems []ProblemInput `json:"problems" validate:"required,dive"`
}

// AddProblemsResponse reports how many problems were appended.
type AddProblemsResponse struct {
	Count int `json:"count"`
}

// ProblemResponse is the serialized representation of a problem.
type ProblemResponse struct {
	ID           string  `json:"id"`
	Question     string  `json:"question"`
	Answer       *string `json:"answer"`
	Difficulty   string  `json:"difficulty"`
	Order        int     `json:"order"`
	TopicID      *string `json:"topicId"`
	AssignmentID string  `json:"assignmentId"`
}

// AssignmentCounts mirrors the relation counts attached to assignment
// payloads.
type AssignmentCounts struct {
	Problems int64 `json:"problems"`
}

// AssignmentResponse is the serialized representation used in listings; the
// embedded subject is trimmed to a summary.
type AssignmentResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	DueDate     *time.Time        `json:"dueDate"`
	Status      string            `json:"status"`
	TutorID     string            `json:"tutorId"`
	SubjectID   string            `json:"subjectId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Subject     *SubjectSummary   `json:"subject,omitempty"`
	Count       *AssignmentCounts `json:"_count,omitempty"`
}

// AssignmentDetailResponse carries the full subject and the ordered problem
// list.
type AssignmentDetailResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	DueDate     *time.Time        `json:"dueDate"`
	Status      string            `json:"status"`
	TutorID     string            `json:"tutorId"`
	SubjectID   string            `json:"subjectId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Subject     *SubjectResponse  `json:"subject,omitempty"`
	Problems    []ProblemResponse `json:"problems"`
}

// NewProblemResponse converts a model into a DTO.
func NewProblemResponse(model models.Problem) ProblemResponse {
	return ProblemResponse{
		ID:           model.ID,
		Question:     model.Question,
		Answer:       model.Answer,
		Difficulty:   model.Difficulty,
		Order:        model.Order,
		TopicID:      model.TopicID,
		AssignmentID: model.AssignmentID,
	}
}

// NewProblemResponseSlice converts a slice of models into DTOs.
func NewProblemResponseSlice(problems []models.Problem) []ProblemResponse {
	responses := make([]ProblemResponse, 0, len(problems))
	for _, problem := range problems {
		responses = append(responses, NewProblemResponse(problem))
	}

	return responses
}

// NewAssignmentResponse converts a model into the listing DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		DueDate:     model.DueDate,
		Status:      model.Status,
		TutorID:     model.TutorID,
		SubjectID:   model.SubjectID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	if model.Subject != nil {
		summary := NewSubjectSummary(*model.Subject)
		response.Subject = &summary
	}

	return response
}

// NewAssignmentDetailResponse converts a model into the detail DTO.
func NewAssignmentDetailResponse(model models.Assignment) AssignmentDetailResponse {
	response := AssignmentDetailResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		DueDate:     model.DueDate,
		Status:      model.Status,
		TutorID:     model.TutorID,
		SubjectID:   model.SubjectID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		Problems:    NewProblemResponseSlice(model.Problems),
	}

	if model.Subject != nil {
		subject := NewSubjectResponse(*model.Subject)
		response.Subject = &subject
	}

	return response
}

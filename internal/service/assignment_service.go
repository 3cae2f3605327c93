package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/models"
	"github.com/noah-isme/tesuto-go-api/internal/repository"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

// ErrAssignmentNotFound indicates the requested assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentService exposes assignment domain use cases.
type AssignmentService interface {
	List(ctx context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, id string) (dto.AssignmentDetailResponse, error)
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentDetailResponse, error)
	Update(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (dto.AssignmentDetailResponse, error)
	Delete(ctx context.Context, id string) error
	AddProblems(ctx context.Context, id string, payload dto.AddProblemsRequest) (dto.AddProblemsResponse, error)
}

type assignmentService struct {
	repo      repository.AssignmentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(repo repository.AssignmentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		activity:  activity,
		logger:    logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) List(ctx context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		ids = append(ids, assignment.ID)
	}

	counts, err := s.repo.ProblemCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		response := dto.NewAssignmentResponse(assignment)
		response.Count = &dto.AssignmentCounts{Problems: counts[assignment.ID]}
		responses = append(responses, response)
	}

	return responses, nil
}

func (s *assignmentService) Get(ctx context.Context, id string) (dto.AssignmentDetailResponse, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentDetailResponse{}, ErrAssignmentNotFound
		}

		return dto.AssignmentDetailResponse{}, err
	}

	return dto.NewAssignmentDetailResponse(assignment), nil
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentDetailResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentDetailResponse{}, err
	}

	dueDate, err := parseOptionalDate(payload.DueDate)
	if err != nil {
		return dto.AssignmentDetailResponse{}, err
	}

	status := models.StatusDraft
	if payload.Status != nil {
		status = *payload.Status
	}

	assignment := models.Assignment{
		Title:       s.sanitizer.Sanitize(payload.Title),
		Description: s.sanitizeOptional(payload.Description),
		DueDate:     dueDate,
		Status:      status,
		TutorID:     payload.TutorID,
		SubjectID:   payload.SubjectID,
	}

	// Initial problems are ordered by their position in the request.
	for index, input := range payload.Problems {
		assignment.Problems = append(assignment.Problems, s.buildProblem(input, index))
	}

	if err := s.repo.Create(ctx, &assignment); err != nil {
		return dto.AssignmentDetailResponse{}, err
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID).
		Int("problems", len(assignment.Problems)).
		Msg("assignment created")
	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    assignment.TutorID,
		Action:     "assignment.created",
		EntityType: "assignment",
		EntityID:   assignment.ID,
		Metadata:   map[string]interface{}{"title": assignment.Title},
	})

	created, err := s.repo.GetByID(ctx, assignment.ID)
	if err != nil {
		return dto.AssignmentDetailResponse{}, err
	}

	return dto.NewAssignmentDetailResponse(created), nil
}

func (s *assignmentService) Update(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (dto.AssignmentDetailResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentDetailResponse{}, err
	}

	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentDetailResponse{}, ErrAssignmentNotFound
		}

		return dto.AssignmentDetailResponse{}, err
	}

	if payload.Title != nil {
		assignment.Title = s.sanitizer.Sanitize(*payload.Title)
	}
	if payload.Description != nil {
		assignment.Description = s.sanitizeOptional(payload.Description)
	}
	if payload.DueDate != nil {
		dueDate, err := parseOptionalDate(payload.DueDate)
		if err != nil {
			return dto.AssignmentDetailResponse{}, err
		}
		assignment.DueDate = dueDate
	}
	if payload.Status != nil {
		assignment.Status = *payload.Status
	}

	if err := s.repo.Update(ctx, &assignment); err != nil {
		return dto.AssignmentDetailResponse{}, err
	}

	s.logger.Info().Str("assignment_id", assignment.ID).Msg("assignment updated")

	return dto.NewAssignmentDetailResponse(assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	s.logger.Info().Str("assignment_id", id).Msg("assignment deleted")
	return nil
}

func (s *assignmentService) AddProblems(ctx context.Context, id string, payload dto.AddProblemsRequest) (dto.AddProblemsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AddProblemsResponse{}, err
	}

	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AddProblemsResponse{}, ErrAssignmentNotFound
		}

		return dto.AddProblemsResponse{}, err
	}

	count, err := s.repo.CountProblems(ctx, assignment.ID)
	if err != nil {
		return dto.AddProblemsResponse{}, err
	}

	// Appended problems continue the existing order sequence.
	problems := make([]models.Problem, 0, len(payload.Problems))
	for index, input := range payload.Problems {
		problem := s.buildProblem(input, int(count)+index)
		problem.AssignmentID = assignment.ID
		problems = append(problems, problem)
	}

	if err := s.repo.CreateProblems(ctx, problems); err != nil {
		return dto.AddProblemsResponse{}, err
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID).
		Int("appended", len(problems)).
		Msg("problems appended")

	return dto.AddProblemsResponse{Count: len(problems)}, nil
}

func (s *assignmentService) buildProblem(input dto.ProblemInput, order int) models.Problem {
	difficulty := models.DifficultyMedium
	if input.Difficulty != nil {
		difficulty = *input.Difficulty
	}

	return models.Problem{
		Question:   s.sanitizer.Sanitize(input.Question),
		Answer:     s.sanitizeOptional(input.Answer),
		Difficulty: difficulty,
		Order:      order,
		TopicID:    input.TopicID,
	}
}

func (s *assignmentService) sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	sanitized := s.sanitizer.Sanitize(*value)
	return &sanitized
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}

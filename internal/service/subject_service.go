package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/models"
	"github.com/noah-isme/tesuto-go-api/internal/repository"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

var (
	// ErrSubjectNotFound indicates the requested subject does not exist.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrTopicNotFound indicates the requested topic does not exist within
	// the subject.
	ErrTopicNotFound = errors.New("topic not found")
)

// SubjectService exposes subject domain use cases.
type SubjectService interface {
	List(ctx context.Context, filter repository.SubjectFilter) ([]dto.SubjectResponse, error)
	Get(ctx context.Context, id string) (dto.SubjectDetailResponse, error)
	Create(ctx context.Context, payload dto.SubjectCreateRequest) (dto.SubjectResponse, error)
	Update(ctx context.Context, id string, payload dto.SubjectUpdateRequest) (dto.SubjectResponse, error)
	Delete(ctx context.Context, id string) error
	AddTopic(ctx context.Context, subjectID string, payload dto.TopicCreateRequest) (dto.TopicResponse, error)
	DeleteTopic(ctx context.Context, subjectID, topicID string) error
}

type subjectService struct {
	repo      repository.SubjectRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewSubjectService builds a new subject service.
func NewSubjectService(repo repository.SubjectRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) SubjectService {
	return &subjectService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		activity:  activity,
		logger:    logger.With().Str("component", "subject_service").Logger(),
	}
}

func (s *subjectService) List(ctx context.Context, filter repository.SubjectFilter) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		ids = append(ids, subject.ID)
	}

	counts, err := s.repo.AssignmentCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		response := dto.NewSubjectResponse(subject)
		response.Count = &dto.SubjectCounts{Assignments: counts[subject.ID]}
		responses = append(responses, response)
	}

	return responses, nil
}

func (s *subjectService) Get(ctx context.Context, id string) (dto.SubjectDetailResponse, error) {
	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubjectDetailResponse{}, ErrSubjectNotFound
		}

		return dto.SubjectDetailResponse{}, err
	}

	assignments := make([]dto.AssignmentResponse, 0, len(subject.Assignments))
	for _, assignment := range subject.Assignments {
		assignments = append(assignments, dto.NewAssignmentResponse(assignment))
	}

	return dto.SubjectDetailResponse{
		SubjectResponse: dto.NewSubjectResponse(subject),
		Assignments:     assignments,
	}, nil
}

func (s *subjectService) Create(ctx context.Context, payload dto.SubjectCreateRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject := models.Subject{
		Name:        s.sanitizer.Sanitize(payload.Name),
		Description: s.sanitizeOptional(payload.Description),
		Icon:        payload.Icon,
		Color:       payload.Color,
		TutorID:     payload.TutorID,
	}

	// Initial topics are ordered by their position in the request.
	for index, name := range payload.Topics {
		subject.Topics = append(subject.Topics, models.Topic{
			Name:  s.sanitizer.Sanitize(name),
			Order: index,
		})
	}

	if err := s.repo.Create(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	s.logger.Info().Str("subject_id", subject.ID).Int("topics", len(subject.Topics)).Msg("subject created")
	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    subject.TutorID,
		Action:     "subject.created",
		EntityType: "subject",
		EntityID:   subject.ID,
		Metadata:   map[string]interface{}{"name": subject.Name},
	})

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) Update(ctx context.Context, id string, payload dto.SubjectUpdateRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubjectResponse{}, ErrSubjectNotFound
		}

		return dto.SubjectResponse{}, err
	}

	if payload.Name != nil {
		subject.Name = s.sanitizer.Sanitize(*payload.Name)
	}
	if payload.Description != nil {
		subject.Description = s.sanitizeOptional(payload.Description)
	}
	if payload.Icon != nil {
		subject.Icon = payload.Icon
	}
	if payload.Color != nil {
		subject.Color = payload.Color
	}

	if err := s.repo.Update(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	s.logger.Info().Str("subject_id", subject.ID).Msg("subject updated")

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	s.logger.Info().Str("subject_id", id).Msg("subject deleted")
	return nil
}

func (s *subjectService) AddTopic(ctx context.Context, subjectID string, payload dto.TopicCreateRequest) (dto.TopicResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TopicResponse{}, err
	}

	subject, err := s.repo.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TopicResponse{}, ErrSubjectNotFound
		}

		return dto.TopicResponse{}, err
	}

	count, err := s.repo.CountTopics(ctx, subject.ID)
	if err != nil {
		return dto.TopicResponse{}, err
	}

	topic := models.Topic{
		Name:      s.sanitizer.Sanitize(payload.Name),
		Order:     int(count),
		SubjectID: subject.ID,
	}

	if err := s.repo.CreateTopic(ctx, &topic); err != nil {
		return dto.TopicResponse{}, err
	}

	s.logger.Info().Str("subject_id", subject.ID).Str("topic_id", topic.ID).Msg("topic added")

	return dto.NewTopicResponse(topic), nil
}

func (s *subjectService) DeleteTopic(ctx context.Context, subjectID, topicID string) error {
	if err := s.repo.DeleteTopic(ctx, subjectID, topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTopicNotFound
		}
		return err
	}

	s.logger.Info().Str("subject_id", subjectID).Str("topic_id", topicID).Msg("topic deleted")
	return nil
}

func (s *subjectService) sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	sanitized := s.sanitizer.Sanitize(*value)
	return &sanitized
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/repository"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

const recentAssignmentLimit = 5

// OverviewService produces aggregated per-tutor dashboard metrics.
type OverviewService interface {
	GetOverview(ctx context.Context, tutorID string) (dto.OverviewResponse, error)
}

type overviewService struct {
	users       repository.UserRepository
	subjects    repository.SubjectRepository
	assignments repository.AssignmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewOverviewService builds the dashboard aggregator.
func NewOverviewService(users repository.UserRepository, subjects repository.SubjectRepository, assignments repository.AssignmentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) OverviewService {
	return &overviewService{
		users:       users,
		subjects:    subjects,
		assignments: assignments,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "overview_service").Logger(),
	}
}

func (s *overviewService) GetOverview(ctx context.Context, tutorID string) (dto.OverviewResponse, error) {
	if _, err := s.users.GetByID(ctx, tutorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OverviewResponse{}, ErrUserNotFound
		}

		return dto.OverviewResponse{}, err
	}

	cacheKey := fmt.Sprintf("overview:tutor:%s", tutorID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.OverviewResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("tutor_id", tutorID).Msg("overview cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read overview cache")
		}
	}

	subjectCount, err := s.subjects.CountForTutor(ctx, tutorID)
	if err != nil {
		return dto.OverviewResponse{}, err
	}

	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{TutorID: tutorID})
	if err != nil {
		return dto.OverviewResponse{}, err
	}

	problemCount, err := s.assignments.CountProblemsForTutor(ctx, tutorID)
	if err != nil {
		return dto.OverviewResponse{}, err
	}

	byStatus := make(map[string]int64, 4)
	recent := make([]dto.AssignmentResponse, 0, recentAssignmentLimit)
	for _, assignment := range assignments {
		byStatus[assignment.Status]++
		if len(recent) < recentAssignmentLimit {
			recent = append(recent, dto.NewAssignmentResponse(assignment))
		}
	}

	response := dto.OverviewResponse{
		Subjects:            subjectCount,
		Assignments:         int64(len(assignments)),
		Problems:            problemCount,
		AssignmentsByStatus: byStatus,
		RecentAssignments:   recent,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store overview cache")
			}
		}
	}

	return response, nil
}

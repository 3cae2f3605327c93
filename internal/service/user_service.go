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

// ErrUserNotFound indicates the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserService exposes user domain use cases.
type UserService interface {
	// Auth finds the user by email or creates it. An existing user is
	// returned untouched; this is not a field-level update.
	Auth(ctx context.Context, payload dto.AuthRequest) (dto.UserResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewUserService builds a new user service.
func NewUserService(repo repository.UserRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		activity:  activity,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Auth(ctx context.Context, payload dto.AuthRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	existing, err := s.repo.GetByEmail(ctx, payload.Email)
	if err == nil {
		return dto.NewUserResponse(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	role := models.RoleTutor
	if payload.Role != nil {
		role = *payload.Role
	}

	user := models.User{
		Email:  payload.Email,
		Name:   s.sanitizer.Sanitize(payload.Name),
		Avatar: payload.Avatar,
		Role:   role,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user created")
	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    user.ID,
		Action:     "user.created",
		EntityType: "user",
		EntityID:   user.ID,
		Metadata:   map[string]interface{}{"email": user.Email},
	})

	return dto.NewUserResponse(user), nil
}

func (s *userService) Get(ctx context.Context, id string) (dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}

		return dto.UserResponse{}, err
	}

	return dto.NewUserResponseWithCounts(user.User, user.SubjectCount, user.AssignmentCount), nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponseWithCounts(user.User, user.SubjectCount, user.AssignmentCount))
	}

	return responses, nil
}

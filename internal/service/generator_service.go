package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tesuto-go-api/pkg/ai"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

var (
	// ErrGenerationTimeout indicates the provider did not answer within the
	// configured deadline.
	ErrGenerationTimeout = errors.New("generation timed out")
	// ErrGenerationFailed indicates the provider answered but produced no
	// usable problems.
	ErrGenerationFailed = errors.New("generation failed")
)

// GeneratorService exposes the homework generation use case.
type GeneratorService interface {
	Generate(ctx context.Context, payload dto.GenerateRequest) (dto.GenerateResponse, error)
}

type generatorService struct {
	generator ai.Generator
	validator *validator.Validate
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewGeneratorService builds a generation service with an explicit per-call
// deadline.
func NewGeneratorService(generator ai.Generator, validate *validator.Validate, timeout time.Duration, logger zerolog.Logger) GeneratorService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &generatorService{
		generator: generator,
		validator: validate,
		timeout:   timeout,
		logger:    logger.With().Str("component", "generator_service").Logger(),
	}
}

func (s *generatorService) Generate(ctx context.Context, payload dto.GenerateRequest) (dto.GenerateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GenerateResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	problems, err := s.generator.Generate(ctx, ai.GenerationRequest{
		Subject:    payload.Subject,
		Topic:      payload.Topic,
		Difficulty: payload.Difficulty,
		Count:      payload.Count,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn().Str("subject", payload.Subject).Msg("generation timed out")
			return dto.GenerateResponse{}, ErrGenerationTimeout
		}
		if errors.Is(err, ai.ErrNoProblems) {
			return dto.GenerateResponse{}, ErrGenerationFailed
		}

		return dto.GenerateResponse{}, err
	}

	responses := make([]dto.GeneratedProblemResponse, 0, len(problems))
	for _, problem := range problems {
		responses = append(responses, dto.GeneratedProblemResponse{
			Question:   problem.Question,
			Answer:     problem.Answer,
			Difficulty: problem.Difficulty,
			Topic:      problem.Topic,
		})
	}

	s.logger.Info().Str("subject", payload.Subject).Int("count", len(responses)).Msg("problems generated")

	return dto.GenerateResponse{Problems: responses, Count: len(responses)}, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tesuto-go-api/pkg/ai"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

type stubGenerator struct {
	problems []ai.GeneratedProblem
	err      error
	block    bool
}

func (s *stubGenerator) Generate(ctx context.Context, _ ai.GenerationRequest) ([]ai.GeneratedProblem, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.problems, nil
}

func newGeneratorServiceForTest(generator ai.Generator, timeout time.Duration) GeneratorService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewGeneratorService(generator, validate, timeout, zerolog.Nop())
}

func TestGeneratorServiceReturnsProblems(t *testing.T) {
	generator := &stubGenerator{problems: []ai.GeneratedProblem{
		{Question: "Solve 3x = 9", Answer: "x = 3", Difficulty: ai.DifficultyEasy, Topic: "Algebra"},
		{Question: "Differentiate x^3", Answer: "3x^2", Difficulty: ai.DifficultyMedium, Topic: "Calculus"},
	}}
	svc := newGeneratorServiceForTest(generator, time.Second)

	response, err := svc.Generate(context.Background(), dto.GenerateRequest{Subject: "Mathematics"})
	require.NoError(t, err)
	require.Equal(t, 2, response.Count)
	require.Len(t, response.Problems, 2)
	require.Equal(t, "Solve 3x = 9", response.Problems[0].Question)
	require.Equal(t, "Algebra", response.Problems[0].Topic)
}

func TestGeneratorServiceRejectsInvalidPayload(t *testing.T) {
	svc := newGeneratorServiceForTest(&stubGenerator{}, time.Second)

	_, err := svc.Generate(context.Background(), dto.GenerateRequest{})
	require.Error(t, err)

	_, err = svc.Generate(context.Background(), dto.GenerateRequest{Subject: "Mathematics", Difficulty: "IMPOSSIBLE"})
	require.Error(t, err)

	_, err = svc.Generate(context.Background(), dto.GenerateRequest{Subject: "Mathematics", Count: 50})
	require.Error(t, err)
}

func TestGeneratorServiceMapsTimeout(t *testing.T) {
	svc := newGeneratorServiceForTest(&stubGenerator{block: true}, 20*time.Millisecond)

	_, err := svc.Generate(context.Background(), dto.GenerateRequest{Subject: "Physics"})
	require.ErrorIs(t, err, ErrGenerationTimeout)
}

func TestGeneratorServiceMapsEmptyResult(t *testing.T) {
	svc := newGeneratorServiceForTest(&stubGenerator{err: ai.ErrNoProblems}, time.Second)

	_, err := svc.Generate(context.Background(), dto.GenerateRequest{Subject: "Philosophy"})
	require.ErrorIs(t, err, ErrGenerationFailed)
}

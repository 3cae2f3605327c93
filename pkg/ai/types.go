package ai

import (
	"context"
	"errors"
)

// Difficulty values accepted by generation requests. Mixed selects across
// all difficulties.
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
	DifficultyMixed  = "MIXED"
)

// ErrNoProblems indicates the provider produced no problems for the request.
var ErrNoProblems = errors.New("no problems generated")

// GenerationRequest describes the problem set a tutor asked for.
type GenerationRequest struct {
	Subject    string
	Topic      string
	Difficulty string
	Count      int
}

// GeneratedProblem is a single exercise produced by a generator.
type GeneratedProblem struct {
	Question   string `json:"question"`
	Answer     string `json:"answer,omitempty"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic,omitempty"`
}

// Generator describes a homework generation backend.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) ([]GeneratedProblem, error)
}

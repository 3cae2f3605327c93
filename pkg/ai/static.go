package ai

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// StaticConfig defines configuration options for the canned generator.
type StaticConfig struct {
	// Delay simulates generation latency before results are returned.
	Delay  time.Duration
	Logger zerolog.Logger
}

// StaticGenerator serves problems from a built-in bank. It stands in for a
// real generation service and is the default provider.
type StaticGenerator struct {
	delay  time.Duration
	logger zerolog.Logger
}

// NewStaticGenerator builds the canned provider.
func NewStaticGenerator(cfg StaticConfig) *StaticGenerator {
	return &StaticGenerator{
		delay:  cfg.Delay,
		logger: cfg.Logger.With().Str("component", "static_generator").Logger(),
	}
}

var mathBank = []GeneratedProblem{
	{Question: "Solve the quadratic equation: x² + 5x + 6 = 0", Answer: "x = -2 or x = -3", Difficulty: DifficultyEasy, Topic: "Algebra"},
	{Question: "Find the derivative of f(x) = 3x³ - 2x² + 5x - 7", Answer: "f'(x) = 9x² - 4x + 5", Difficulty: DifficultyMedium, Topic: "Calculus"},
	{Question: "Calculate the area of a triangle with sides 5, 12, and 13 units.", Answer: "30 square units", Difficulty: DifficultyEasy, Topic: "Geometry"},
	{Question: "If sin(θ) = 3/5 and θ is in the first quadrant, find cos(θ).", Answer: "cos(θ) = 4/5", Difficulty: DifficultyMedium, Topic: "Trigonometry"},
	{Question: "Evaluate the integral: ∫(2x + 3)dx from 0 to 4", Answer: "28", Difficulty: DifficultyHard, Topic: "Calculus"},
}

var physicsBank = []GeneratedProblem{
	{Question: "A car accelerates from rest at 2 m/s². How far does it travel in 5 seconds?", Answer: "25 meters", Difficulty: DifficultyEasy, Topic: "Mechanics"},
	{Question: "Calculate the work done when a force of 10N moves an object 5m in the direction of the force.", Answer: "50 Joules", Difficulty: DifficultyEasy, Topic: "Mechanics"},
	{Question: "A 2kg object is heated from 20°C to 80°C. If specific heat capacity is 500 J/kg·K, find the heat energy required.", Answer: "60,000 Joules", Difficulty: DifficultyMedium, Topic: "Thermodynamics"},
	{Question: "Calculate the focal length of a convex lens that forms an image at 30cm when the object is at 15cm.", Answer: "10 cm", Difficulty: DifficultyHard, Topic: "Optics"},
	{Question: "Find the electric field at a distance of 2m from a point charge of 4μC.", Answer: "9 × 10³ N/C", Difficulty: DifficultyMedium, Topic: "Electromagnetism"},
}

// Generate returns canned problems after the configured artificial delay. It
// honours context cancellation while waiting.
func (g *StaticGenerator) Generate(ctx context.Context, req GenerationRequest) ([]GeneratedProblem, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	bank := bankForSubject(req.Subject)
	matches := filterBank(bank, req.Topic, req.Difficulty)
	if len(matches) == 0 {
		// Relax the filters rather than return an empty set; the bank is
		// intentionally small.
		matches = bank
	}
	if len(matches) == 0 {
		return nil, ErrNoProblems
	}

	count := req.Count
	if count <= 0 {
		count = 5
	}

	problems := make([]GeneratedProblem, 0, count)
	for i := 0; i < count; i++ {
		problems = append(problems, matches[i%len(matches)])
	}

	g.logger.Debug().
		Str("subject", req.Subject).
		Int("count", len(problems)).
		Msg("canned problems generated")

	return problems, nil
}

func bankForSubject(subject string) []GeneratedProblem {
	switch normalized := strings.ToLower(strings.TrimSpace(subject)); {
	case strings.Contains(normalized, "math"):
		return mathBank
	case strings.Contains(normalized, "phys"):
		return physicsBank
	default:
		combined := make([]GeneratedProblem, 0, len(mathBank)+len(physicsBank))
		combined = append(combined, mathBank...)
		combined = append(combined, physicsBank...)
		return combined
	}
}

func filterBank(bank []GeneratedProblem, topic, difficulty string) []GeneratedProblem {
	topic = strings.ToLower(strings.TrimSpace(topic))
	difficulty = strings.ToUpper(strings.TrimSpace(difficulty))

	matches := make([]GeneratedProblem, 0, len(bank))
	for _, problem := range bank {
		if topic != "" && !strings.Contains(strings.ToLower(problem.Topic), topic) {
			continue
		}
		if difficulty != "" && difficulty != DifficultyMixed && problem.Difficulty != difficulty {
			continue
		}
		matches = append(matches, problem)
	}

	return matches
}

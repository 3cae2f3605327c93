package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/models"
	"github.com/noah-isme/tesuto-go-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by
	// configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedResult reports what the seeding run created.
type SeedResult struct {
	Users    int `json:"users"`
	Subjects int `json:"subjects"`
}

// SeedService provisions the demo tutor and starter subjects.
type SeedService interface {
	Seed(ctx context.Context, token string) (SeedResult, error)
}

type seedService struct {
	users    repository.UserRepository
	subjects repository.SubjectRepository
	enabled  bool
	token    string
	logger   zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(users repository.UserRepository, subjects repository.SubjectRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		users:    users,
		subjects: subjects,
		enabled:  enabled,
		token:    token,
		logger:   logger.With().Str("component", "seed_service").Logger(),
	}
}

type seedSubject struct {
	name        string
	description string
	icon        string
	color       string
	topics      []string
}

var seedSubjects = []seedSubject{
	{
		name:        "Mathematics",
		description: "Core mathematics curriculum including algebra, geometry, and calculus",
		icon:        "📐",
		color:       "#3B82F6",
		topics:      []string{"Algebra", "Geometry", "Trigonometry", "Calculus", "Statistics & Probability"},
	},
	{
		name:        "Physics",
		description: "Fundamental physics covering mechanics, thermodynamics, and electromagnetism",
		icon:        "⚛️",
		color:       "#8B5CF6",
		topics:      []string{"Mechanics", "Thermodynamics", "Electromagnetism", "Optics", "Waves & Sound", "Modern Physics"},
	},
}

// Seed is idempotent: existing records are left untouched.
func (s *seedService) Seed(ctx context.Context, token string) (SeedResult, error) {
	if !s.enabled {
		return SeedResult{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return SeedResult{}, ErrSeedUnauthorized
	}

	result := SeedResult{}

	avatar := "https://api.dicebear.com/7.x/avataaars/svg?seed=Sarah"
	tutor, err := s.users.GetByEmail(ctx, "sarah.johnson@tesuto.edu")
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tutor = models.User{
			Email:  "sarah.johnson@tesuto.edu",
			Name:   "Sarah Johnson",
			Avatar: &avatar,
			Role:   models.RoleTutor,
		}
		if err := s.users.Create(ctx, &tutor); err != nil {
			return result, err
		}
		result.Users++
	} else if err != nil {
		return result, err
	}

	existing, err := s.subjects.List(ctx, repository.SubjectFilter{TutorID: tutor.ID})
	if err != nil {
		return result, err
	}

	present := make(map[string]bool, len(existing))
	for _, subject := range existing {
		present[subject.Name] = true
	}

	for _, def := range seedSubjects {
		if present[def.name] {
			continue
		}

		description := def.description
		icon := def.icon
		color := def.color
		subject := models.Subject{
			Name:        def.name,
			Description: &description,
			Icon:        &icon,
			Color:       &color,
			TutorID:     tutor.ID,
		}
		for index, topic := range def.topics {
			subject.Topics = append(subject.Topics, models.Topic{Name: topic, Order: index})
		}

		if err := s.subjects.Create(ctx, &subject); err != nil {
			return result, err
		}
		result.Subjects++
	}

	s.logger.Info().
		Int("users", result.Users).
		Int("subjects", result.Subjects).
		Msg("demo data seeded")

	return result, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}

	provided := strings.TrimSpace(token)
	if len(expected) != len(provided) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

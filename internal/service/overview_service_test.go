package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/models"
	"github.com/noah-isme/tesuto-go-api/internal/repository"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Subject{}, &models.Topic{}, &models.Assignment{}, &models.Problem{}, &models.ActivityLog{}))
	return db
}

func setupCache(t *testing.T) *redis.Client {
	t.Helper()
	server := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: server.Addr()})
}

func TestOverviewServiceAggregatesTutorNumbers(t *testing.T) {
	db := setupServiceDB(t)
	cache := setupCache(t)

	tutor := models.User{Email: "overview@example.com", Name: "Tutor"}
	require.NoError(t, db.Create(&tutor).Error)

	subject := models.Subject{Name: "Mathematics", TutorID: tutor.ID}
	require.NoError(t, db.Create(&subject).Error)

	active := models.Assignment{Title: "Week 1", Status: models.StatusActive, TutorID: tutor.ID, SubjectID: subject.ID}
	draft := models.Assignment{Title: "Week 2", Status: models.StatusDraft, TutorID: tutor.ID, SubjectID: subject.ID}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&draft).Error)
	require.NoError(t, db.Create(&models.Problem{Question: "2+2?", AssignmentID: active.ID}).Error)

	svc := NewOverviewService(
		repository.NewUserRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewAssignmentRepository(db),
		cache,
		time.Minute,
		zerolog.Nop(),
	)

	overview, err := svc.GetOverview(context.Background(), tutor.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), overview.Subjects)
	require.Equal(t, int64(2), overview.Assignments)
	require.Equal(t, int64(1), overview.Problems)
	require.Equal(t, int64(1), overview.AssignmentsByStatus[models.StatusActive])
	require.Equal(t, int64(1), overview.AssignmentsByStatus[models.StatusDraft])
	require.Len(t, overview.RecentAssignments, 2)
}

func TestOverviewServiceServesFromCache(t *testing.T) {
	db := setupServiceDB(t)
	cache := setupCache(t)

	tutor := models.User{Email: "cached@example.com", Name: "Tutor"}
	require.NoError(t, db.Create(&tutor).Error)

	svc := NewOverviewService(
		repository.NewUserRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewAssignmentRepository(db),
		cache,
		time.Minute,
		zerolog.Nop(),
	)

	first, err := svc.GetOverview(context.Background(), tutor.ID)
	require.NoError(t, err)
	require.Zero(t, first.Subjects)

	// Mutation after the first read is invisible until the TTL expires.
	subject := models.Subject{Name: "Mathematics", TutorID: tutor.ID}
	require.NoError(t, db.Create(&subject).Error)

	second, err := svc.GetOverview(context.Background(), tutor.ID)
	require.NoError(t, err)
	require.Zero(t, second.Subjects)
}

func TestOverviewServiceWorksWithoutCache(t *testing.T) {
	db := setupServiceDB(t)

	tutor := models.User{Email: "nocache@example.com", Name: "Tutor"}
	require.NoError(t, db.Create(&tutor).Error)

	svc := NewOverviewService(
		repository.NewUserRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewAssignmentRepository(db),
		nil,
		time.Minute,
		zerolog.Nop(),
	)

	overview, err := svc.GetOverview(context.Background(), tutor.ID)
	require.NoError(t, err)
	require.Zero(t, overview.Subjects)

	_, err = svc.GetOverview(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

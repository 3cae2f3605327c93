package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/config"
	"github.com/noah-isme/tesuto-go-api/internal/handler"
	"github.com/noah-isme/tesuto-go-api/internal/models"
	"github.com/noah-isme/tesuto-go-api/internal/repository"
	"github.com/noah-isme/tesuto-go-api/internal/router"
	"github.com/noah-isme/tesuto-go-api/internal/service"
	"github.com/noah-isme/tesuto-go-api/pkg/ai"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func setupTestApp(t *testing.T) testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Subject{}, &models.Topic{}, &models.Assignment{}, &models.Problem{}, &models.ActivityLog{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.Nop()

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	userService := service.NewUserService(userRepo, validate, activityService, logger)
	subjectService := service.NewSubjectService(subjectRepo, validate, activityService, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, activityService, logger)
	generator := ai.NewStaticGenerator(ai.StaticConfig{Logger: logger})
	generatorService := service.NewGeneratorService(generator, validate, time.Second, logger)
	overviewService := service.NewOverviewService(userRepo, subjectRepo, assignmentRepo, nil, time.Minute, logger)
	seedService := service.NewSeedService(userRepo, subjectRepo, true, "test-token", logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Tesuto API", AppVersion: "test"}, router.Dependencies{
		UserHandler:       handler.NewUserHandler(userService, overviewService, activityService, logger),
		SubjectHandler:    handler.NewSubjectHandler(subjectService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		GeneratorHandler:  handler.NewGeneratorHandler(generatorService, logger),
		SeedHandler:       handler.NewSeedHandler(seedService, logger),
	})

	return testEnv{app: app, db: db}
}

func (e testEnv) createTutor(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Name: "Tutor"}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

func requireErrorMessage(t *testing.T, resp *http.Response, message string) {
	t.Helper()
	var failure struct {
		Error string `json:"error"`
	}
	decodeResponse(t, resp, &failure)
	require.Equal(t, message, failure.Error)
}

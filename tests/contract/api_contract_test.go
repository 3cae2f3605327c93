package contract_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/config"
	"github.com/noah-isme/tesuto-go-api/internal/handler"
	"github.com/noah-isme/tesuto-go-api/internal/models"
	"github.com/noah-isme/tesuto-go-api/internal/repository"
	"github.com/noah-isme/tesuto-go-api/internal/router"
	"github.com/noah-isme/tesuto-go-api/internal/service"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	schema, err := jsonschema.NewCompiler().Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func setupContractApp(t *testing.T) (*fiber.App, models.User) {
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
	overviewService := service.NewOverviewService(userRepo, subjectRepo, assignmentRepo, nil, time.Minute, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Tesuto API"}, router.Dependencies{
		UserHandler:       handler.NewUserHandler(userService, overviewService, activityService, logger),
		SubjectHandler:    handler.NewSubjectHandler(subjectService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
	})

	tutor := models.User{Email: "contract@example.com", Name: "Contract Tutor"}
	require.NoError(t, db.Create(&tutor).Error)

	return app, tutor
}

func testRequest(t *testing.T, app *fiber.App, method, target string, payload interface{}) *http.Response {
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

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func validateBody(t *testing.T, resp *http.Response, schema *jsonschema.Schema) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func TestUserResponseContract(t *testing.T) {
	schema := compileSchema(t, "user.schema.json")
	app, tutor := setupContractApp(t)

	resp := testRequest(t, app, http.MethodGet, "/users/"+tutor.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	validateBody(t, resp, schema)
}

func TestSubjectDetailContract(t *testing.T) {
	schema := compileSchema(t, "subject_detail.schema.json")
	app, tutor := setupContractApp(t)

	resp := testRequest(t, app, http.MethodPost, "/subjects", dto.SubjectCreateRequest{
		Name:    "Mathematics",
		TutorID: tutor.ID,
		Topics:  []string{"Algebra", "Geometry"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var subject dto.SubjectResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&subject))
	require.NoError(t, resp.Body.Close())

	resp = testRequest(t, app, http.MethodGet, "/subjects/"+subject.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	validateBody(t, resp, schema)
}

func TestAssignmentDetailContract(t *testing.T) {
	schema := compileSchema(t, "assignment_detail.schema.json")
	app, tutor := setupContractApp(t)

	resp := testRequest(t, app, http.MethodPost, "/subjects", dto.SubjectCreateRequest{Name: "Physics", TutorID: tutor.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var subject dto.SubjectResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&subject))
	require.NoError(t, resp.Body.Close())

	due := "2026-10-01T09:00:00Z"
	resp = testRequest(t, app, http.MethodPost, "/assignments", dto.AssignmentCreateRequest{
		Title:     "Mechanics problem set",
		DueDate:   &due,
		TutorID:   tutor.ID,
		SubjectID: subject.ID,
		Problems: []dto.ProblemInput{
			{Question: "A car accelerates from rest at 2 m/s². How far does it travel in 5 seconds?"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	validateBody(t, resp, schema)
}

func TestErrorResponseContract(t *testing.T) {
	schema := compileSchema(t, "error.schema.json")
	app, _ := setupContractApp(t)

	resp := testRequest(t, app, http.MethodGet, "/subjects/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	validateBody(t, resp, schema)

	resp = testRequest(t, app, http.MethodPost, "/subjects", dto.SubjectCreateRequest{Name: "Incomplete"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	validateBody(t, resp, schema)
}

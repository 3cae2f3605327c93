package handler_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tesuto-go-api/internal/models"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

func (e testEnv) createSubject(t *testing.T, tutorID, name string) dto.SubjectResponse {
	t.Helper()
	resp, err := e.app.Test(jsonRequest(t, "POST", "/subjects", dto.SubjectCreateRequest{Name: name, TutorID: tutorID}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var subject dto.SubjectResponse
	decodeResponse(t, resp, &subject)
	return subject
}

func TestAssignmentHandlerCreateWithProblems(t *testing.T) {
	env := setupTestApp(t)
	tutor := env.createTutor(t, "assignments@example.com")
	subject := env.createSubject(t, tutor.ID, "Mathematics")

	due := "2026-09-15T10:00:00Z"
	req := jsonRequest(t, "POST", "/assignments", dto.AssignmentCreateRequest{
		Title:     "Week 1 homework",
		DueDate:   &due,
		TutorID:   tutor.ID,
		SubjectID: subject.ID,
		Problems: []dto.ProblemInput{
			{Question: "What is 2+2?"},
			{Question: "Differentiate x^2"},
		},
	})
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var assignment dto.AssignmentDetailResponse
	decodeResponse(t, resp, &assignment)
	require.NotEmpty(t, assignment.ID)
	require.Equal(t, models.StatusDraft, assignment.Status)
	require.NotNil(t, assignment.DueDate)
	require.NotNil(t, assignment.Subject)
	require.Equal(t, "Mathematics", assignment.Subject.Name)
	require.Len(t, assignment.Problems, 2)
	require.Equal(t, 0, assignment.Problems[0].Order)
	require.Equal(t, 1, assignment.Problems[1].Order)
	require.Equal(t, models.DifficultyMedium, assignment.Problems[0].Difficulty)
}

func TestAssignmentHandlerCreateRejectsBadDueDate(t *testing.T) {
	env := setupTestApp(t)
	tutor := env.createTutor(t, "baddate@example.com")
	subject := env.createSubject(t, tutor.ID, "Mathematics")

	due := "15/09/2026"
	resp, err := env.app.Test(jsonRequest(t, "POST", "/assignments", dto.AssignmentCreateRequest{
		Title:     "Broken",
		DueDate:   &due,
		TutorID:   tutor.ID,
		SubjectID: subject.ID,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAssignmentHandlerListFiltersByStatus(t *testing.T) {
	env := setupTestApp(t)
	tutor := env.createTutor(t, "filters@example.com")
	subject := env.createSubject(t, tutor.ID, "Mathematics")

	active := models.StatusActive
	for _, payload := range []dto.AssignmentCreateRequest{
		{Title: "Active work", Status: &active, TutorID: tutor.ID, SubjectID: subject.ID},
		{Title: "Draft work", TutorID: tutor.ID, SubjectID: subject.ID},
	} {
		resp, err := env.app.Test(jsonRequest(t, "POST", "/assignments", payload))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := env.app.Test(jsonRequest(t, "GET", "/assignments?tutorId="+tutor.ID+"&status=ACTIVE", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var assignments []dto.AssignmentResponse
	decodeResponse(t, resp, &assignments)
	require.Len(t, assignments, 1)
	require.Equal(t, "Active work", assignments[0].Title)
	require.NotNil(t, assignments[0].Subject)
	require.NotNil(t, assignments[0].Count)
}

func TestAssignmentHandlerGetReturnsNotFound(t *testing.T) {
	env := setupTestApp(t)

	resp, err := env.app.Test(jsonRequest(t, "GET", "/assignments/does-not-exist", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	requireErrorMessage(t, resp, "Assignment not found")
}

func TestAssignmentHandlerAddProblemsAppends(t *testing.T) {
	env := setupTestApp(t)
	tutor := env.createTutor(t, "append@example.com")
	subject := env.createSubject(t, tutor.ID, "Mathematics")

	resp, err := env.app.Test(jsonRequest(t, "POST", "/assignments", dto.AssignmentCreateRequest{
		Title:     "Week 1",
		TutorID:   tutor.ID,
		SubjectID: subject.ID,
		Problems:  []dto.ProblemInput{{Question: "First"}},
	}))
	require.NoError(t, err)
	var assignment dto.AssignmentDetailResponse
	decodeResponse(t, resp, &assignment)

	resp, err = env.app.Test(jsonRequest(t, "POST", "/assignments/"+assignment.ID+"/problems", dto.AddProblemsRequest{
		Problems: []dto.ProblemInput{{Question: "Second"}, {Question: "Third"}},
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result dto.AddProblemsResponse
	decodeResponse(t, resp, &result)
	require.Equal(t, 2, result.Count)

	resp, err = env.app.Test(jsonRequest(t, "GET", "/assignments/"+assignment.ID, nil))
	require.NoError(t, err)
	var detail dto.AssignmentDetailResponse
	decodeResponse(t, resp, &detail)
	require.Len(t, detail.Problems, 3)
	require.Equal(t, 2, detail.Problems[2].Order)

	resp, err = env.app.Test(jsonRequest(t, "POST", "/assignments/missing/problems", dto.AddProblemsRequest{
		Problems: []dto.ProblemInput{{Question: "Nope"}},
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// An empty list is a no-op, not a validation failure.
	resp, err = env.app.Test(jsonRequest(t, "POST", "/assignments/"+assignment.ID+"/problems", dto.AddProblemsRequest{
		Problems: []dto.ProblemInput{},
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &result)
	require.Equal(t, 0, result.Count)
}

func TestAssignmentHandlerUpdateAndDelete(t *testing.T) {
	env := setupTestApp(t)
	tutor := env.createTutor(t, "lifecycle@example.com")
	subject := env.createSubject(t, tutor.ID, "Mathematics")

	resp, err := env.app.Test(jsonRequest(t, "POST", "/assignments", dto.AssignmentCreateRequest{
		Title:     "Week 1",
		TutorID:   tutor.ID,
		SubjectID: subject.ID,
	}))
	require.NoError(t, err)
	var assignment dto.AssignmentDetailResponse
	decodeResponse(t, resp, &assignment)

	status := models.StatusCompleted
	resp, err = env.app.Test(jsonRequest(t, "PUT", "/assignments/"+assignment.ID, dto.AssignmentUpdateRequest{Status: &status}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated dto.AssignmentDetailResponse
	decodeResponse(t, resp, &updated)
	require.Equal(t, models.StatusCompleted, updated.Status)

	resp, err = env.app.Test(jsonRequest(t, "DELETE", "/assignments/"+assignment.ID, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var deleted dto.DeleteResponse
	decodeResponse(t, resp, &deleted)
	require.True(t, deleted.Success)

	resp, err = env.app.Test(jsonRequest(t, "GET", "/assignments/"+assignment.ID, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

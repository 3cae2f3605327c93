package client_test

import (
	"context"
	"encoding/json"
	"go/parser"
	"go/token"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tesuto-go-api/pkg/client"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

func TestClientAuthPostsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/auth", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload dto.AuthRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "sarah@example.com", payload.Email)

		json.NewEncoder(w).Encode(dto.UserResponse{ID: "user-1", Email: payload.Email, Name: payload.Name, Role: "TUTOR"})
	}))
	defer server.Close()

	api := client.New(server.URL)
	user, err := api.Auth(context.Background(), dto.AuthRequest{Email: "sarah@example.com", Name: "Sarah"})
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
	require.Equal(t, "TUTOR", user.Role)
}

func TestClientListAssignmentsBuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assignments", r.URL.Path)
		require.Equal(t, "tutor-1", r.URL.Query().Get("tutorId"))
		require.Equal(t, "ACTIVE", r.URL.Query().Get("status"))

		json.NewEncoder(w).Encode([]dto.AssignmentResponse{{ID: "a-1", Title: "Week 1", Status: "ACTIVE"}})
	}))
	defer server.Close()

	api := client.New(server.URL)
	assignments, err := api.ListAssignments(context.Background(), client.AssignmentFilter{TutorID: "tutor-1", Status: "ACTIVE"})
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Equal(t, "Week 1", assignments[0].Title)
}

func TestClientSurfacesServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Subject not found"})
	}))
	defer server.Close()

	api := client.New(server.URL)
	_, err := api.GetSubject(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Subject not found", apiErr.Error())
}

func TestClientFallsBackToStatusMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	api := client.New(server.URL)
	_, err := api.ListUsers(context.Background())
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "API Error: 502", apiErr.Error())
}

func TestClientDeleteSubject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/subjects/subject-1", r.URL.Path)
		json.NewEncoder(w).Encode(dto.DeleteResponse{Success: true})
	}))
	defer server.Close()

	api := client.New(server.URL)
	require.NoError(t, api.DeleteSubject(context.Background(), "subject-1"))
}

func TestClientGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate", r.URL.Path)

		var payload dto.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "Mathematics", payload.Subject)

		json.NewEncoder(w).Encode(dto.GenerateResponse{
			Problems: []dto.GeneratedProblemResponse{{Question: "2+2?", Difficulty: "EASY"}},
			Count:    1,
		})
	}))
	defer server.Close()

	api := client.New(server.URL)
	result, err := api.Generate(context.Background(), dto.GenerateRequest{Subject: "Mathematics"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	require.Equal(t, "2+2?", result.Problems[0].Question)
}

// The client lives under pkg/ so other modules can import it; pulling in an
// internal package would make every signature naming it uncallable from
// outside.
func TestClientImportsRemainExternallyUsable(t *testing.T) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, ".", nil, parser.ImportsOnly)
	require.NoError(t, err)

	for _, pkg := range pkgs {
		for name, file := range pkg.Files {
			if strings.HasSuffix(name, "_test.go") {
				continue
			}
			for _, imp := range file.Imports {
				require.NotContains(t, imp.Path.Value, "/internal/",
					"%s imports %s", name, imp.Path.Value)
			}
		}
	}
}

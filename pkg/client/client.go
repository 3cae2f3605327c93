// Package client provides a typed HTTP client for the Tesuto API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

const defaultTimeout = 30 * time.Second

// APIError describes a non-2xx response returned by the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("API Error: %d", e.StatusCode)
}

// Client talks to a Tesuto API deployment.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New builds a client pointed at the given base URL.
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	TutorID   string
	SubjectID string
	Status    string
}

func (f AssignmentFilter) query() string {
	values := url.Values{}
	if f.TutorID != "" {
		values.Set("tutorId", f.TutorID)
	}
	if f.SubjectID != "" {
		values.Set("subjectId", f.SubjectID)
	}
	if f.Status != "" {
		values.Set("status", f.Status)
	}

	if len(values) == 0 {
		return ""
	}

	return "?" + values.Encode()
}

// Auth creates the user on first sight or returns the stored profile.
func (c *Client) Auth(ctx context.Context, req dto.AuthRequest) (dto.UserResponse, error) {
	var out dto.UserResponse
	err := c.do(ctx, http.MethodPost, "/users/auth", req, &out)
	return out, err
}

// GetUser fetches a single user with aggregate counts.
func (c *Client) GetUser(ctx context.Context, id string) (dto.UserResponse, error) {
	var out dto.UserResponse
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out)
	return out, err
}

// ListUsers fetches every user with aggregate counts.
func (c *Client) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

// GetOverview fetches the dashboard aggregates for a tutor.
func (c *Client) GetOverview(ctx context.Context, tutorID string) (dto.OverviewResponse, error) {
	var out dto.OverviewResponse
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(tutorID)+"/overview", nil, &out)
	return out, err
}

// ListSubjects fetches subjects, optionally scoped to a tutor.
func (c *Client) ListSubjects(ctx context.Context, tutorID string) ([]dto.SubjectResponse, error) {
	path := "/subjects"
	if tutorID != "" {
		path += "?tutorId=" + url.QueryEscape(tutorID)
	}

	var out []dto.SubjectResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// GetSubject fetches a subject with its topics and assignments.
func (c *Client) GetSubject(ctx context.Context, id string) (dto.SubjectDetailResponse, error) {
	var out dto.SubjectDetailResponse
	err := c.do(ctx, http.MethodGet, "/subjects/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateSubject creates a subject along with any initial topics.
func (c *Client) CreateSubject(ctx context.Context, req dto.SubjectCreateRequest) (dto.SubjectResponse, error) {
	var out dto.SubjectResponse
	err := c.do(ctx, http.MethodPost, "/subjects", req, &out)
	return out, err
}

// UpdateSubject applies a partial update to a subject.
func (c *Client) UpdateSubject(ctx context.Context, id string, req dto.SubjectUpdateRequest) (dto.SubjectResponse, error) {
	var out dto.SubjectResponse
	err := c.do(ctx, http.MethodPut, "/subjects/"+url.PathEscape(id), req, &out)
	return out, err
}

// DeleteSubject removes a subject and everything beneath it.
func (c *Client) DeleteSubject(ctx context.Context, id string) error {
	var out dto.DeleteResponse
	return c.do(ctx, http.MethodDelete, "/subjects/"+url.PathEscape(id), nil, &out)
}

// AddTopic appends a topic to a subject.
func (c *Client) AddTopic(ctx context.Context, subjectID string, req dto.TopicCreateRequest) (dto.TopicResponse, error) {
	var out dto.TopicResponse
	err := c.do(ctx, http.MethodPost, "/subjects/"+url.PathEscape(subjectID)+"/topics", req, &out)
	return out, err
}

// DeleteTopic removes a topic from a subject.
func (c *Client) DeleteTopic(ctx context.Context, subjectID, topicID string) error {
	var out dto.DeleteResponse
	path := "/subjects/" + url.PathEscape(subjectID) + "/topics/" + url.PathEscape(topicID)
	return c.do(ctx, http.MethodDelete, path, nil, &out)
}

// ListAssignments fetches assignments matching the filter.
func (c *Client) ListAssignments(ctx context.Context, filter AssignmentFilter) ([]dto.AssignmentResponse, error) {
	var out []dto.AssignmentResponse
	err := c.do(ctx, http.MethodGet, "/assignments"+filter.query(), nil, &out)
	return out, err
}

// GetAssignment fetches an assignment with its subject and problems.
func (c *Client) GetAssignment(ctx context.Context, id string) (dto.AssignmentDetailResponse, error) {
	var out dto.AssignmentDetailResponse
	err := c.do(ctx, http.MethodGet, "/assignments/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateAssignment creates an assignment along with any inline problems.
func (c *Client) CreateAssignment(ctx context.Context, req dto.AssignmentCreateRequest) (dto.AssignmentDetailResponse, error) {
	var out dto.AssignmentDetailResponse
	err := c.do(ctx, http.MethodPost, "/assignments", req, &out)
	return out, err
}

// UpdateAssignment applies a partial update to an assignment.
func (c *Client) UpdateAssignment(ctx context.Context, id string, req dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	var out dto.AssignmentResponse
	err := c.do(ctx, http.MethodPut, "/assignments/"+url.PathEscape(id), req, &out)
	return out, err
}

// DeleteAssignment removes an assignment and its problems.
func (c *Client) DeleteAssignment(ctx context.Context, id string) error {
	var out dto.DeleteResponse
	return c.do(ctx, http.MethodDelete, "/assignments/"+url.PathEscape(id), nil, &out)
}

// AddProblems appends problems to an assignment.
func (c *Client) AddProblems(ctx context.Context, assignmentID string, req dto.AddProblemsRequest) (dto.AddProblemsResponse, error) {
	var out dto.AddProblemsResponse
	err := c.do(ctx, http.MethodPost, "/assignments/"+url.PathEscape(assignmentID)+"/problems", req, &out)
	return out, err
}

// Generate asks the configured generator for practice problems.
func (c *Client) Generate(ctx context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error) {
	var out dto.GenerateResponse
	err := c.do(ctx, http.MethodPost, "/generate", req, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var failure struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &failure); err == nil {
			apiErr.Message = failure.Error
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	return nil
}

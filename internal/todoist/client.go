package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/todoist-tools/todoist-mcp/internal/logging"
)

const (
	// BaseURL is the Todoist REST API endpoint all requests are issued against.
	BaseURL = "https://api.todoist.com/rest/v2"

	// TokenEnvVar names the environment variable holding the API token.
	TokenEnvVar = "TODOIST_API_TOKEN"

	// RequestTimeout is the fixed per-request timeout. There are no retries.
	RequestTimeout = 30 * time.Second
)

// TokenSource resolves the bearer credential for a single request.
type TokenSource func() (string, error)

// EnvTokenSource reads the API token from the environment. It is consulted on
// every request, not at process start, so the token can be rotated without a
// restart.
func EnvTokenSource() (string, error) {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return "", &ConfigError{
			Msg: TokenEnvVar + " environment variable not set. " +
				"Get your token from: Todoist Settings → Integrations → Developer → API token",
		}
	}
	return token, nil
}

// Client provides access to the Todoist REST API. Each call is a single
// authenticated request/response round trip; the client holds no state beyond
// its configuration.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

// NewClient creates a Todoist client using the production base URL and the
// environment token source.
func NewClient() *Client {
	return NewClientWithOptions(BaseURL, nil, EnvTokenSource)
}

// NewClientWithOptions creates a client with an explicit base URL, HTTP client
// and token source. Used by tests to point the client at a mock server.
func NewClientWithOptions(baseURL string, httpClient *http.Client, token TokenSource) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}
	if token == nil {
		token = EnvTokenSource
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		token:      token,
	}
}

// request issues one authenticated request and decodes the JSON response.
// A 204 response yields (nil, nil), distinct from an empty object or array.
func (c *Client) request(ctx context.Context, method, path string, body any, query url.Values) (any, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}

	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("todoist: failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	reqURL := c.baseURL + "/" + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("todoist: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("todoist request failed",
			logging.Operation(method+" /"+path), logging.Err(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("todoist request complete",
		logging.Operation(method+" /"+path),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration(logging.KeyDuration, time.Since(start)))

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Method: method, Path: path}
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return decoded, nil
}

// ListProjects returns all projects in the account.
func (c *Client) ListProjects(ctx context.Context) ([]Entity, error) {
	v, err := c.request(ctx, http.MethodGet, "projects", nil, nil)
	if err != nil {
		return nil, err
	}
	return entitiesFromAny(v)
}

// GetProject returns a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (Entity, error) {
	v, err := c.request(ctx, http.MethodGet, "projects/"+projectID, nil, nil)
	if err != nil {
		return nil, err
	}
	return entityFromAny(v)
}

// CreateProject creates a new project from the given request body.
func (c *Client) CreateProject(ctx context.Context, body map[string]any) (Entity, error) {
	v, err := c.request(ctx, http.MethodPost, "projects", body, nil)
	if err != nil {
		return nil, err
	}
	return entityFromAny(v)
}

// ListTasks returns active tasks matching the given query parameters
// (project_id, label, filter). Any limit is applied client side by the caller;
// the API returns the full matching set.
func (c *Client) ListTasks(ctx context.Context, query url.Values) ([]Entity, error) {
	v, err := c.request(ctx, http.MethodGet, "tasks", nil, query)
	if err != nil {
		return nil, err
	}
	return entitiesFromAny(v)
}

// GetTask returns a single active task by ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (Entity, error) {
	v, err := c.request(ctx, http.MethodGet, "tasks/"+taskID, nil, nil)
	if err != nil {
		return nil, err
	}
	return entityFromAny(v)
}

// CreateTask creates a new task from the given request body.
func (c *Client) CreateTask(ctx context.Context, body map[string]any) (Entity, error) {
	v, err := c.request(ctx, http.MethodPost, "tasks", body, nil)
	if err != nil {
		return nil, err
	}
	return entityFromAny(v)
}

// UpdateTask applies a partial update to a task. Only the fields present in
// body are sent; the caller rejects an empty diff before reaching here.
func (c *Client) UpdateTask(ctx context.Context, taskID string, body map[string]any) (Entity, error) {
	v, err := c.request(ctx, http.MethodPost, "tasks/"+taskID, body, nil)
	if err != nil {
		return nil, err
	}
	return entityFromAny(v)
}

// CloseTask marks a task as complete. For recurring tasks the API closes the
// current occurrence and schedules the next one.
func (c *Client) CloseTask(ctx context.Context, taskID string) error {
	_, err := c.request(ctx, http.MethodPost, "tasks/"+taskID+"/close", nil, nil)
	return err
}

// ReopenTask reopens a completed task.
func (c *Client) ReopenTask(ctx context.Context, taskID string) error {
	_, err := c.request(ctx, http.MethodPost, "tasks/"+taskID+"/reopen", nil, nil)
	return err
}

// DeleteTask permanently deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	_, err := c.request(ctx, http.MethodDelete, "tasks/"+taskID, nil, nil)
	return err
}

// ListLabels returns all personal labels in the account.
func (c *Client) ListLabels(ctx context.Context) ([]Entity, error) {
	v, err := c.request(ctx, http.MethodGet, "labels", nil, nil)
	if err != nil {
		return nil, err
	}
	return entitiesFromAny(v)
}

// CreateLabel creates a new label from the given request body.
func (c *Client) CreateLabel(ctx context.Context, body map[string]any) (Entity, error) {
	v, err := c.request(ctx, http.MethodPost, "labels", body, nil)
	if err != nil {
		return nil, err
	}
	return entityFromAny(v)
}

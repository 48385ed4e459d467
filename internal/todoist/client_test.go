package todoist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClientWithOptions(ts.URL, ts.Client(), func() (string, error) { return "test-token", nil })
}

func TestClient_AuthorizationHeader(t *testing.T) {
	var gotAuth, gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_TokenSourceError(t *testing.T) {
	client := NewClientWithOptions("http://localhost:1", nil, func() (string, error) {
		return "", &ConfigError{Msg: "token missing"}
	})

	_, err := client.ListProjects(context.Background())
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "token missing", configErr.Msg)
}

func TestClient_ListTasksQuery(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "1", "content": "task"}]`))
	})

	query := url.Values{}
	query.Set("filter", "due before: tomorrow")
	query.Set("label", "urgent")

	tasks, err := client.ListTasks(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task", tasks[0].String("content"))
	assert.Equal(t, "due before: tomorrow", gotQuery.Get("filter"))
	assert.Equal(t, "urgent", gotQuery.Get("label"))
}

func TestClient_CreateTaskBody(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "42", "content": "new task"}`))
	})

	task, err := client.CreateTask(context.Background(), map[string]any{
		"content":  "new task",
		"priority": 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", task.String("id"))
	assert.Equal(t, "new task", body["content"])
	assert.Equal(t, float64(4), body["priority"])
}

func TestClient_NoContent(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.CloseTask(context.Background(), "42"))
	assert.Equal(t, "/tasks/42/close", gotPath)

	require.NoError(t, client.ReopenTask(context.Background(), "42"))
	require.NoError(t, client.DeleteTask(context.Background(), "42"))
}

func TestClient_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetTask(context.Background(), "999")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, http.MethodGet, httpErr.Method)
	assert.Equal(t, "tasks/999", httpErr.Path)
}

func TestClient_DecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.ListLabels(context.Background())
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestClient_ShapeMismatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "1"}`))
	})

	// A list endpoint returning an object is a decode failure, not a panic.
	_, err := client.ListProjects(context.Background())
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.ErrorIs(t, err, errNotArray)
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.ListProjects(ctx)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestIsTimeout(t *testing.T) {
	assert.False(t, IsTimeout(nil))
	assert.False(t, IsTimeout(errors.New("plain error")))
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.True(t, IsTimeout(&url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}}))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestEnvTokenSource(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	_, err := EnvTokenSource()
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Msg, TokenEnvVar)

	t.Setenv(TokenEnvVar, "secret")
	token, err := EnvTokenSource()
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}

func TestNewClientWithOptions_Defaults(t *testing.T) {
	client := NewClientWithOptions(BaseURL+"/", nil, nil)
	assert.Equal(t, BaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.token)
}

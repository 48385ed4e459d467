package task_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoist-tools/todoist-mcp/internal/server"
	"github.com/todoist-tools/todoist-mcp/internal/todoist"
)

func newTestContext(t *testing.T, handler http.HandlerFunc) *server.ServerContext {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	sc, err := server.NewServerContext(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	sc.SetTodoistClient(todoist.NewClientWithOptions(ts.URL, ts.Client(),
		func() (string, error) { return "test-token", nil }))
	return sc
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestHandleListTasks_QueryParams(t *testing.T) {
	var query map[string][]string
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		query = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "1", "content": "Review PR", "priority": 4}]`))
	})

	result, err := handleListTasks(context.Background(), callRequest(map[string]any{
		"project_id": "101",
		"label":      "urgent",
		"filter":     "today",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, []string{"101"}, query["project_id"])
	assert.Equal(t, []string{"urgent"}, query["label"])
	assert.Equal(t, []string{"today"}, query["filter"])

	text := resultText(t, result)
	assert.Contains(t, text, "# Todoist Tasks")
	assert.Contains(t, text, "*Showing 1 tasks*")
	assert.Contains(t, text, "### 🔴 Review PR")
	assert.Contains(t, text, "- **Priority**: P1 (highest)")
}

func TestHandleListTasks_LimitTrimsClientSide(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("limit"), "limit must not be forwarded to the API")

		tasks := make([]map[string]any, 5)
		for i := range tasks {
			tasks[i] = map[string]any{"id": "1", "content": "task"}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(tasks))
	})

	result, err := handleListTasks(context.Background(),
		callRequest(map[string]any{"limit": float64(2)}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "*Showing 2 tasks*")
}

func TestHandleListTasks_InvalidLimit(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	for _, limit := range []float64{0, 201} {
		result, err := handleListTasks(context.Background(),
			callRequest(map[string]any{"limit": limit}), sc)
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Equal(t, "Error: limit must be between 1 and 200", resultText(t, result))
	}
}

func TestHandleListTasks_Empty(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	result, err := handleListTasks(context.Background(), callRequest(map[string]any{}), sc)
	require.NoError(t, err)
	assert.Equal(t, "No tasks found matching your criteria.", resultText(t, result))
}

func TestHandleListTasks_DescriptionElided(t *testing.T) {
	long := strings.Repeat("d", 300)
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]map[string]any{
			{"id": "1", "content": "task", "description": long},
		}))
	})

	result, err := handleListTasks(context.Background(), callRequest(map[string]any{}), sc)
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, strings.Repeat("d", 200)+"...")
	assert.NotContains(t, text, strings.Repeat("d", 201))
}

func TestHandleGetTask(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks/2995104339", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "2995104339", "content": "Buy groceries",
			"description": "milk, eggs", "priority": 2,
			"labels": ["errands"],
			"due": {"date": "2026-09-01", "string": "next Tuesday"}
		}`))
	})

	result, err := handleGetTask(context.Background(),
		callRequest(map[string]any{"task_id": "2995104339"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "# Buy groceries")
	assert.Contains(t, text, "- **Due**: next Tuesday (2026-09-01)")
	assert.Contains(t, text, "- **Priority**: P3")
	assert.Contains(t, text, "- **Labels**: errands")
	assert.Contains(t, text, "## Description\nmilk, eggs")
}

func TestHandleGetTask_JSON(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "1", "content": "task"}`))
	})

	result, err := handleGetTask(context.Background(),
		callRequest(map[string]any{"task_id": "1", "response_format": "json"}), sc)
	require.NoError(t, err)

	var task map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &task))
	assert.Equal(t, "task", task["content"])
}

func TestHandleCreateTask_Body(t *testing.T) {
	var body map[string]any
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "42", "content": "Buy groceries",
			"due": {"date": "2026-08-27", "string": "tomorrow"}
		}`))
	})

	result, err := handleCreateTask(context.Background(), callRequest(map[string]any{
		"content":    "Buy groceries",
		"due_string": "tomorrow",
		"priority":   float64(3),
		"labels":     []any{"errands", "home"},
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, "✅ Created task **Buy groceries** due tomorrow (2026-08-27) (ID: `42`)",
		resultText(t, result))
	assert.Equal(t, "Buy groceries", body["content"])
	assert.Equal(t, "tomorrow", body["due_string"])
	assert.Equal(t, float64(3), body["priority"])
	assert.Equal(t, []any{"errands", "home"}, body["labels"])
	_, hasDesc := body["description"]
	assert.False(t, hasDesc, "empty description must be omitted")
}

func TestHandleCreateTask_DueStringWinsOverDueDate(t *testing.T) {
	var body map[string]any
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "42", "content": "task"}`))
	})

	result, err := handleCreateTask(context.Background(), callRequest(map[string]any{
		"content":    "task",
		"due_string": "tomorrow",
		"due_date":   "2026-09-01",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, "tomorrow", body["due_string"])
	_, hasDueDate := body["due_date"]
	assert.False(t, hasDueDate)
}

func TestHandleCreateTask_Validation(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			name: "missing content",
			args: map[string]any{},
			want: "Error: content is required",
		},
		{
			name: "content too long",
			args: map[string]any{"content": strings.Repeat("x", 5001)},
			want: "Error: content must be at most 5000 characters",
		},
		{
			name: "description too long",
			args: map[string]any{"content": "task", "description": strings.Repeat("x", 16001)},
			want: "Error: description must be at most 16000 characters",
		},
		{
			name: "bad due date",
			args: map[string]any{"content": "task", "due_date": "tomorrow"},
			want: "Error: due_date must be in YYYY-MM-DD format",
		},
		{
			name: "priority out of range",
			args: map[string]any{"content": "task", "priority": float64(5)},
			want: "Error: priority must be between 1 and 4 (4 is highest)",
		},
		{
			name: "priority not an integer",
			args: map[string]any{"content": "task", "priority": 2.5},
			want: "Error: priority must be an integer between 1 and 4",
		},
		{
			name: "labels not strings",
			args: map[string]any{"content": "task", "labels": []any{"ok", 7}},
			want: "Error: labels must be an array of strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleCreateTask(context.Background(), callRequest(tt.args), sc)
			require.NoError(t, err)
			require.True(t, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestHandleUpdateTask(t *testing.T) {
	var body map[string]any
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks/42", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "42", "content": "Renamed"}`))
	})

	result, err := handleUpdateTask(context.Background(), callRequest(map[string]any{
		"task_id": "42",
		"content": "Renamed",
		"labels":  []any{},
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, "✅ Updated task **Renamed** (ID: `42`)", resultText(t, result))
	assert.Equal(t, "Renamed", body["content"])
	// An explicit empty list clears the task's labels.
	assert.Equal(t, []any{}, body["labels"])
}

func TestHandleUpdateTask_NoFields(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	result, err := handleUpdateTask(context.Background(),
		callRequest(map[string]any{"task_id": "42"}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Equal(t, "Error: No fields to update. Provide at least one field to change.",
		resultText(t, result))
}

func TestHandleCompleteTask(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks/42/close", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := handleCompleteTask(context.Background(),
		callRequest(map[string]any{"task_id": "42"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, "✅ Completed task (ID: `42`)", resultText(t, result))
}

func TestHandleReopenTask(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks/42/reopen", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := handleReopenTask(context.Background(),
		callRequest(map[string]any{"task_id": "42"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, "✅ Reopened task (ID: `42`)", resultText(t, result))
}

func TestHandleDeleteTask(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/tasks/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := handleDeleteTask(context.Background(),
		callRequest(map[string]any{"task_id": "42"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, "🗑️ Deleted task (ID: `42`)", resultText(t, result))
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"unauthorized", http.StatusUnauthorized, "Error: Invalid API token. Check TODOIST_API_TOKEN is correct."},
		{"forbidden", http.StatusForbidden, "Error: Permission denied. You may not have access to this resource."},
		{"not found", http.StatusNotFound, "Error: Resource not found. Check the ID is correct."},
		{"rate limited", http.StatusTooManyRequests, "Error: Rate limit exceeded. Please wait before making more requests."},
		{"server error", http.StatusBadGateway, "Error: Todoist server error. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			result, err := handleGetTask(context.Background(),
				callRequest(map[string]any{"task_id": "42"}), sc)
			require.NoError(t, err)
			require.True(t, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestRegisterTaskTools_ReadOnlySkipsWrites(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {})

	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterTaskTools(s, sc, true))
}

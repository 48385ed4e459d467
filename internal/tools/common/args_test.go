package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoist-tools/todoist-mcp/internal/render"
)

func TestRequiredString(t *testing.T) {
	value, err := RequiredString(map[string]any{"task_id": " 42 "}, "task_id")
	require.NoError(t, err)
	assert.Equal(t, "42", value, "values are trimmed")

	for name, args := range map[string]map[string]any{
		"absent":          {},
		"empty":           {"task_id": ""},
		"whitespace only": {"task_id": "   "},
		"wrong type":      {"task_id": 42},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := RequiredString(args, "task_id")
			require.Error(t, err)
			assert.EqualError(t, err, "task_id is required")
		})
	}
}

func TestBoundedString(t *testing.T) {
	value, err := BoundedString(map[string]any{"name": "ok"}, "name", 5)
	require.NoError(t, err)
	assert.Equal(t, "ok", value)

	value, err = BoundedString(map[string]any{}, "name", 5)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	_, err = BoundedString(map[string]any{"name": "toolong"}, "name", 5)
	assert.EqualError(t, err, "name must be at most 5 characters")
}

func TestIntInRange(t *testing.T) {
	value, err := IntInRange(map[string]any{}, "limit", 50, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, 50, value, "absent argument takes the default")

	value, err = IntInRange(map[string]any{"limit": float64(10)}, "limit", 50, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, 10, value)

	_, err = IntInRange(map[string]any{"limit": float64(0)}, "limit", 50, 1, 200)
	assert.EqualError(t, err, "limit must be between 1 and 200")

	_, err = IntInRange(map[string]any{"limit": float64(201)}, "limit", 50, 1, 200)
	assert.EqualError(t, err, "limit must be between 1 and 200")

	_, err = IntInRange(map[string]any{"limit": 1.5}, "limit", 50, 1, 200)
	assert.EqualError(t, err, "limit must be an integer")

	_, err = IntInRange(map[string]any{"limit": "50"}, "limit", 50, 1, 200)
	assert.EqualError(t, err, "limit must be an integer")
}

func TestOptionalPriority(t *testing.T) {
	p, err := OptionalPriority(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 0, p, "absent priority reads as unset")

	p, err = OptionalPriority(map[string]any{"priority": float64(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, p)

	_, err = OptionalPriority(map[string]any{"priority": float64(0)})
	assert.EqualError(t, err, "priority must be between 1 and 4 (4 is highest)")

	_, err = OptionalPriority(map[string]any{"priority": float64(5)})
	assert.EqualError(t, err, "priority must be between 1 and 4 (4 is highest)")

	_, err = OptionalPriority(map[string]any{"priority": 2.5})
	assert.EqualError(t, err, "priority must be an integer between 1 and 4")
}

func TestStringList(t *testing.T) {
	list, present, err := StringList(map[string]any{}, "labels")
	require.NoError(t, err)
	assert.False(t, present)
	assert.Nil(t, list)

	list, present, err = StringList(map[string]any{"labels": []any{}}, "labels")
	require.NoError(t, err)
	assert.True(t, present, "explicit empty list is distinct from absent")
	assert.Empty(t, list)

	list, present, err = StringList(map[string]any{"labels": []any{" work ", "urgent"}}, "labels")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, []string{"work", "urgent"}, list)

	_, _, err = StringList(map[string]any{"labels": "work"}, "labels")
	assert.EqualError(t, err, "labels must be an array of strings")

	_, _, err = StringList(map[string]any{"labels": []any{"work", 7}}, "labels")
	assert.EqualError(t, err, "labels must be an array of strings")
}

func TestOptionalDate(t *testing.T) {
	value, err := OptionalDate(map[string]any{}, "due_date")
	require.NoError(t, err)
	assert.Equal(t, "", value)

	value, err = OptionalDate(map[string]any{"due_date": "2026-09-01"}, "due_date")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", value)

	for _, bad := range []string{"tomorrow", "2026/09/01", "09-01-2026", "2026-13-01", "2026-02-30"} {
		_, err := OptionalDate(map[string]any{"due_date": bad}, "due_date")
		assert.EqualError(t, err, "due_date must be in YYYY-MM-DD format", "input %q", bad)
	}
}

func TestResponseFormat(t *testing.T) {
	format, err := ResponseFormat(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, render.FormatMarkdown, format, "markdown is the default")

	format, err = ResponseFormat(map[string]any{"response_format": "markdown"})
	require.NoError(t, err)
	assert.Equal(t, render.FormatMarkdown, format)

	format, err = ResponseFormat(map[string]any{"response_format": "json"})
	require.NoError(t, err)
	assert.Equal(t, render.FormatJSON, format)

	_, err = ResponseFormat(map[string]any{"response_format": "yaml"})
	assert.EqualError(t, err, "response_format must be 'markdown' or 'json'")
}

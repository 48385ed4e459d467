package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/todoist-tools/todoist-mcp/internal/todoist"
)

func TestFormatToolError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "bad request",
			err:  &todoist.HTTPError{StatusCode: 400, Method: "POST", Path: "tasks"},
			want: "Error: Invalid request. Check your parameters are correct.",
		},
		{
			name: "unauthorized",
			err:  &todoist.HTTPError{StatusCode: 401, Method: "GET", Path: "tasks"},
			want: "Error: Invalid API token. Check TODOIST_API_TOKEN is correct.",
		},
		{
			name: "forbidden",
			err:  &todoist.HTTPError{StatusCode: 403, Method: "GET", Path: "tasks"},
			want: "Error: Permission denied. You may not have access to this resource.",
		},
		{
			name: "not found",
			err:  &todoist.HTTPError{StatusCode: 404, Method: "GET", Path: "tasks/1"},
			want: "Error: Resource not found. Check the ID is correct.",
		},
		{
			name: "rate limited",
			err:  &todoist.HTTPError{StatusCode: 429, Method: "GET", Path: "tasks"},
			want: "Error: Rate limit exceeded. Please wait before making more requests.",
		},
		{
			name: "server error",
			err:  &todoist.HTTPError{StatusCode: 503, Method: "GET", Path: "tasks"},
			want: "Error: Todoist server error. Please try again later.",
		},
		{
			name: "other status",
			err:  &todoist.HTTPError{StatusCode: 418, Method: "GET", Path: "tasks"},
			want: "Error: API request failed with status 418",
		},
		{
			name: "wrapped http error",
			err:  fmt.Errorf("listing tasks: %w", &todoist.HTTPError{StatusCode: 404}),
			want: "Error: Resource not found. Check the ID is correct.",
		},
		{
			name: "timeout",
			err:  context.DeadlineExceeded,
			want: "Error: Request timed out. Please try again.",
		},
		{
			name: "validation",
			err:  &ValidationError{Msg: "limit must be between 1 and 200"},
			want: "Error: limit must be between 1 and 200",
		},
		{
			name: "config",
			err:  &todoist.ConfigError{Msg: "TODOIST_API_TOKEN environment variable not set"},
			want: "Error: TODOIST_API_TOKEN environment variable not set",
		},
		{
			name: "unexpected",
			err:  errors.New("connection reset"),
			want: "Error: unexpected failure: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatToolError(tt.err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, got, "Error: ", "every message carries the error prefix")
		})
	}
}

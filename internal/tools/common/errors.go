package common

import (
	"errors"
	"fmt"

	"github.com/todoist-tools/todoist-mcp/internal/todoist"
)

// FormatToolError maps any failure reaching a tool boundary onto exactly one
// user-facing message. The mapping is total: every error category terminates
// here, and tools return the string instead of propagating the error to the
// MCP host.
func FormatToolError(err error) string {
	var httpErr *todoist.HTTPError
	if errors.As(err, &httpErr) {
		switch status := httpErr.StatusCode; {
		case status == 400:
			return "Error: Invalid request. Check your parameters are correct."
		case status == 401:
			return "Error: Invalid API token. Check " + todoist.TokenEnvVar + " is correct."
		case status == 403:
			return "Error: Permission denied. You may not have access to this resource."
		case status == 404:
			return "Error: Resource not found. Check the ID is correct."
		case status == 429:
			return "Error: Rate limit exceeded. Please wait before making more requests."
		case status >= 500:
			return "Error: Todoist server error. Please try again later."
		default:
			return fmt.Sprintf("Error: API request failed with status %d", status)
		}
	}

	if todoist.IsTimeout(err) {
		return "Error: Request timed out. Please try again."
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return "Error: " + validationErr.Msg
	}

	var configErr *todoist.ConfigError
	if errors.As(err, &configErr) {
		return "Error: " + configErr.Msg
	}

	var decodeErr *todoist.DecodeError
	if errors.As(err, &decodeErr) {
		return fmt.Sprintf("Error: unexpected response: %v", decodeErr)
	}

	return fmt.Sprintf("Error: unexpected failure: %v", err)
}

package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/todoist-tools/todoist-mcp/internal/render"
)

// ValidationError reports input that failed validation before any network I/O
// was attempted. Its message is shown to the user verbatim (prefixed) by
// FormatToolError.
type ValidationError struct {
	Msg string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// RequiredString extracts a required string argument. Values are trimmed
// before validation, so whitespace-only input is rejected as missing.
func RequiredString(args map[string]any, name string) (string, error) {
	raw, ok := args[name].(string)
	value := strings.TrimSpace(raw)
	if !ok || value == "" {
		return "", validationErrorf("%s is required", name)
	}
	return value, nil
}

// OptionalString extracts an optional string argument, trimmed. Absent or
// non-string values yield "".
func OptionalString(args map[string]any, name string) string {
	raw, _ := args[name].(string)
	return strings.TrimSpace(raw)
}

// BoundedString extracts an optional string argument and enforces a maximum
// length after trimming.
func BoundedString(args map[string]any, name string, maxLength int) (string, error) {
	value := OptionalString(args, name)
	if len(value) > maxLength {
		return "", validationErrorf("%s must be at most %d characters", name, maxLength)
	}
	return value, nil
}

// RequiredBoundedString extracts a required string argument with a maximum
// length after trimming.
func RequiredBoundedString(args map[string]any, name string, maxLength int) (string, error) {
	value, err := RequiredString(args, name)
	if err != nil {
		return "", err
	}
	if len(value) > maxLength {
		return "", validationErrorf("%s must be at most %d characters", name, maxLength)
	}
	return value, nil
}

// IntInRange extracts an optional numeric argument, applying a default and an
// inclusive range. JSON numbers arrive as float64; non-integral values are
// rejected.
func IntInRange(args map[string]any, name string, def, min, max int) (int, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return def, nil
	}
	f, ok := raw.(float64)
	if !ok || f != float64(int(f)) {
		return 0, validationErrorf("%s must be an integer", name)
	}
	value := int(f)
	if value < min || value > max {
		return 0, validationErrorf("%s must be between %d and %d", name, min, max)
	}
	return value, nil
}

// OptionalPriority extracts the optional 1-4 priority argument. Returns 0
// when absent; 0 is never a valid priority so callers use it as "unset".
func OptionalPriority(args map[string]any) (int, error) {
	raw, ok := args["priority"]
	if !ok || raw == nil {
		return 0, nil
	}
	f, ok := raw.(float64)
	if !ok || f != float64(int(f)) {
		return 0, validationErrorf("priority must be an integer between 1 and 4")
	}
	p := int(f)
	if p < 1 || p > 4 {
		return 0, validationErrorf("priority must be between 1 and 4 (4 is highest)")
	}
	return p, nil
}

// StringList extracts an optional argument holding an array of strings.
// Returns (nil, false, nil) when the argument is absent, so callers can
// distinguish "not provided" from an explicit empty list.
func StringList(args map[string]any, name string) ([]string, bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, false, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false, validationErrorf("%s must be an array of strings", name)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false, validationErrorf("%s must be an array of strings", name)
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out, true, nil
}

// OptionalDate extracts an optional date argument and validates it against
// the strict YYYY-MM-DD format.
func OptionalDate(args map[string]any, name string) (string, error) {
	value := OptionalString(args, name)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", validationErrorf("%s must be in YYYY-MM-DD format", name)
	}
	return value, nil
}

// ResponseFormat extracts the response_format argument, defaulting to
// markdown and rejecting anything other than the two known formats.
func ResponseFormat(args map[string]any) (render.Format, error) {
	value := OptionalString(args, "response_format")
	switch value {
	case "", string(render.FormatMarkdown):
		return render.FormatMarkdown, nil
	case string(render.FormatJSON):
		return render.FormatJSON, nil
	default:
		return "", validationErrorf("response_format must be 'markdown' or 'json'")
	}
}

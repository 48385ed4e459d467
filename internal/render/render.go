package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/todoist-tools/todoist-mcp/internal/todoist"
)

const (
	// CharacterLimit caps markdown list output. Responses longer than this
	// are cut at truncateAt and a notice with the original item count is
	// appended. JSON output is never truncated.
	CharacterLimit = 25000

	truncateAt = CharacterLimit - 200

	// descriptionLimit is the point past which free-text descriptions are
	// elided with an ellipsis in list views. Detail views show the full text.
	descriptionLimit = 200
)

// Format selects between the two rendering strategies for tool output.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// JSON serializes a decoded API value with stable 2-space indentation.
// No filtering and no truncation: the payload passes through unmodified.
func JSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Values here come straight from json.Decoder, so this is unreachable
		// in practice; surface it rather than panic.
		return fmt.Sprintf("failed to serialize response: %v", err)
	}
	return string(out)
}

// Due formats a task's due sub-object for markdown display. Preference order:
// explicit datetime, then the natural-language string with the plain date in
// parentheses, then the plain date alone.
func Due(due todoist.Entity) string {
	if due == nil {
		return "No due date"
	}
	if dt := due.String("datetime"); dt != "" {
		return dt
	}
	date := due.String("date")
	if s := due.String("string"); s != "" {
		return fmt.Sprintf("%s (%s)", s, date)
	}
	return date
}

// PriorityLabel converts a Todoist priority number to its display label.
// The API scale is inverted relative to the display: 4 is the most urgent.
func PriorityLabel(priority int) string {
	switch priority {
	case 1:
		return "P4 (lowest)"
	case 2:
		return "P3"
	case 3:
		return "P2"
	case 4:
		return "P1 (highest)"
	default:
		return fmt.Sprintf("%d", priority)
	}
}

// priorityMarker returns the colored marker shown next to a task heading.
func priorityMarker(priority int) string {
	switch priority {
	case 4:
		return "🔴"
	case 3:
		return "🟠"
	case 2:
		return "🔵"
	default:
		return ""
	}
}

// Truncate cuts a markdown response that exceeds CharacterLimit and appends
// a notice naming the original item count.
func Truncate(result string, itemCount int) string {
	if len(result) <= CharacterLimit {
		return result
	}
	return result[:truncateAt] +
		fmt.Sprintf("\n\n---\n**Response truncated** (%d items). Use filters to narrow results.", itemCount)
}

// ProjectList renders the markdown listing of all projects. Sub-projects are
// indented under their parents; items keep the order the API returned them in.
func ProjectList(projects []todoist.Entity) string {
	lines := []string{"# Todoist Projects", ""}
	for _, p := range projects {
		favorite := ""
		if p.Bool("is_favorite") {
			favorite = " ⭐"
		}
		indent := ""
		if p.String("parent_id") != "" {
			indent = "  "
		}
		lines = append(lines, fmt.Sprintf("%s- **%s**%s (ID: `%s`)", indent, p.String("name"), favorite, p.String("id")))
		if n := p.Int("comment_count"); n > 0 {
			lines = append(lines, fmt.Sprintf("%s  - %d comments", indent, n))
		}
	}
	return Truncate(strings.Join(lines, "\n"), len(projects))
}

// ProjectDetail renders the markdown view of a single project.
func ProjectDetail(p todoist.Entity) string {
	lines := []string{
		fmt.Sprintf("# %s", p.String("name")),
		"",
		fmt.Sprintf("- **ID**: `%s`", p.String("id")),
		fmt.Sprintf("- **Color**: %s", stringOrDefault(p.String("color"), "default")),
		fmt.Sprintf("- **Favorite**: %s", yesNo(p.Bool("is_favorite"))),
		fmt.Sprintf("- **Shared**: %s", yesNo(p.Bool("is_shared"))),
		fmt.Sprintf("- **Comments**: %d", p.Int("comment_count")),
	}
	if parent := p.String("parent_id"); parent != "" {
		lines = append(lines, fmt.Sprintf("- **Parent Project**: `%s`", parent))
	}
	return strings.Join(lines, "\n")
}

// TaskList renders the markdown listing of tasks, one heading block per task,
// in API order. Long descriptions are elided past descriptionLimit characters.
func TaskList(tasks []todoist.Entity) string {
	lines := []string{"# Todoist Tasks", fmt.Sprintf("*Showing %d tasks*", len(tasks)), ""}
	for _, t := range tasks {
		labels := strings.Join(t.StringSlice("labels"), ", ")
		if labels == "" {
			labels = "none"
		}

		lines = append(lines, fmt.Sprintf("### %s %s", priorityMarker(t.Int("priority")), t.String("content")))
		lines = append(lines, fmt.Sprintf("- **ID**: `%s`", t.String("id")))
		lines = append(lines, fmt.Sprintf("- **Due**: %s", Due(t.Due())))
		lines = append(lines, fmt.Sprintf("- **Priority**: %s", PriorityLabel(taskPriority(t))))
		lines = append(lines, fmt.Sprintf("- **Labels**: %s", labels))
		if desc := t.String("description"); desc != "" {
			if len(desc) > descriptionLimit {
				desc = desc[:descriptionLimit] + "..."
			}
			lines = append(lines, fmt.Sprintf("- **Description**: %s", desc))
		}
		lines = append(lines, "")
	}
	return Truncate(strings.Join(lines, "\n"), len(tasks))
}

// TaskDetail renders the full markdown view of a single task, including the
// untruncated description.
func TaskDetail(t todoist.Entity) string {
	lines := []string{
		fmt.Sprintf("# %s", t.String("content")),
		"",
		fmt.Sprintf("- **ID**: `%s`", t.String("id")),
		fmt.Sprintf("- **Project**: `%s`", stringOrDefault(t.String("project_id"), "Inbox")),
		fmt.Sprintf("- **Due**: %s", Due(t.Due())),
		fmt.Sprintf("- **Priority**: %s", PriorityLabel(taskPriority(t))),
		fmt.Sprintf("- **Labels**: %s", stringOrDefault(strings.Join(t.StringSlice("labels"), ", "), "none")),
		fmt.Sprintf("- **Created**: %s", stringOrDefault(t.String("created_at"), "unknown")),
	}
	if desc := t.String("description"); desc != "" {
		lines = append(lines, "", "## Description", desc)
	}
	if parent := t.String("parent_id"); parent != "" {
		lines = append(lines, fmt.Sprintf("- **Parent Task**: `%s`", parent))
	}
	return strings.Join(lines, "\n")
}

// LabelList renders the markdown listing of all labels.
func LabelList(labels []todoist.Entity) string {
	lines := []string{"# Todoist Labels", ""}
	for _, l := range labels {
		favorite := ""
		if l.Bool("is_favorite") {
			favorite = " ⭐"
		}
		lines = append(lines, fmt.Sprintf("- **%s**%s (ID: `%s`, color: %s)",
			l.String("name"), favorite, l.String("id"), stringOrDefault(l.String("color"), "default")))
	}
	return strings.Join(lines, "\n")
}

// CreatedTask renders the confirmation message for a newly created task.
func CreatedTask(t todoist.Entity) string {
	dueInfo := ""
	if due := t.Due(); due != nil {
		dueInfo = " due " + Due(due)
	}
	return fmt.Sprintf("✅ Created task **%s**%s (ID: `%s`)", t.String("content"), dueInfo, t.String("id"))
}

// taskPriority reads a task's priority, defaulting to 1 (lowest) when absent.
func taskPriority(t todoist.Entity) int {
	if _, ok := t["priority"]; !ok {
		return 1
	}
	return t.Int("priority")
}

func stringOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

package task_tools

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/todoist-tools/todoist-mcp/internal/render"
	"github.com/todoist-tools/todoist-mcp/internal/server"
	"github.com/todoist-tools/todoist-mcp/internal/tools/common"
)

const (
	maxContentLength     = 5000
	maxDescriptionLength = 16000

	defaultTaskLimit = 50
	maxTaskLimit     = 200
)

// RegisterTaskTools registers all task-related tools with the MCP server.
// Write tools are skipped when readOnly is true.
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerReadTools(s, sc)
	if !readOnly {
		registerWriteTools(s, sc)
	}
	return nil
}

func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listTasksTool := mcp.NewTool("todoist_list_tasks",
		mcp.WithDescription("List tasks from Todoist with optional filters. Supports filtering by project, label, or using Todoist's filter syntax. Common filters: 'today', 'tomorrow', 'overdue', 'p1', 'p2', 'no due date', 'due before: tomorrow', '7 days', '@label_name', '#project_name'."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("project_id",
			mcp.Description("Filter by project ID. If not set, returns all tasks."),
		),
		mcp.WithString("label",
			mcp.Description("Filter by label name (e.g., 'urgent', 'work')"),
		),
		mcp.WithString("filter",
			mcp.Description("Todoist filter query (e.g., 'today', 'overdue', 'p1', 'due before: tomorrow')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum tasks to return"),
			mcp.DefaultNumber(defaultTaskLimit),
			mcp.Min(1),
			mcp.Max(maxTaskLimit),
		),
		mcp.WithString("response_format",
			mcp.Description("Output format: 'markdown' or 'json'"),
			mcp.Enum("markdown", "json"),
			mcp.DefaultString("markdown"),
		),
	)

	s.AddTool(listTasksTool, common.InstrumentedToolHandlerWithResource(
		"todoist_list_tasks", "tasks", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTasks(ctx, request, sc)
		}))

	getTaskTool := mcp.NewTool("todoist_get_task",
		mcp.WithDescription("Get details of a specific task, including content, description, due date, and labels."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID (e.g., '2995104339')"),
		),
		mcp.WithString("response_format",
			mcp.Description("Output format: 'markdown' or 'json'"),
			mcp.Enum("markdown", "json"),
			mcp.DefaultString("markdown"),
		),
	)

	s.AddTool(getTaskTool, common.InstrumentedToolHandlerWithResource(
		"todoist_get_task", "tasks", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTask(ctx, request, sc)
		}))
}

func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	createTaskTool := mcp.NewTool("todoist_create_task",
		mcp.WithDescription("Create a new task in Todoist. Supports natural language due dates like 'tomorrow', 'next Monday', 'every week'. Priority 4 is highest (red), priority 1 is lowest."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Task content/title (e.g., 'Buy groceries', 'Review PR #123')"),
			mcp.MinLength(1),
			mcp.MaxLength(maxContentLength),
		),
		mcp.WithString("description",
			mcp.Description("Detailed task description"),
			mcp.MaxLength(maxDescriptionLength),
		),
		mcp.WithString("project_id",
			mcp.Description("Project ID to add task to. If not set, adds to Inbox."),
		),
		mcp.WithString("due_string",
			mcp.Description("Natural language due date (e.g., 'tomorrow', 'next Monday', 'Jan 15', 'every week')"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date in YYYY-MM-DD format (e.g., '2024-01-15')"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority 1-4 (4 is highest/red, 1 is lowest)"),
			mcp.Min(1),
			mcp.Max(4),
		),
		mcp.WithArray("labels",
			mcp.Description("List of label names to apply (e.g., ['work', 'urgent'])"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("parent_id",
			mcp.Description("Parent task ID to create as a subtask"),
		),
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandlerWithResource(
		"todoist_create_task", "tasks", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateTask(ctx, request, sc)
		}))

	updateTaskTool := mcp.NewTool("todoist_update_task",
		mcp.WithDescription("Update an existing task in Todoist. Only provided fields will be updated. To clear a due date, use the Todoist app."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID to update"),
		),
		mcp.WithString("content",
			mcp.Description("New task content/title"),
			mcp.MaxLength(maxContentLength),
		),
		mcp.WithString("description",
			mcp.Description("New task description"),
			mcp.MaxLength(maxDescriptionLength),
		),
		mcp.WithString("due_string",
			mcp.Description("Natural language due date (e.g., 'tomorrow', 'next Monday')"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date in YYYY-MM-DD format"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority 1-4 (4 is highest)"),
			mcp.Min(1),
			mcp.Max(4),
		),
		mcp.WithArray("labels",
			mcp.Description("List of label names (replaces existing labels)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandlerWithResource(
		"todoist_update_task", "tasks", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateTask(ctx, request, sc)
		}))

	completeTaskTool := mcp.NewTool("todoist_complete_task",
		mcp.WithDescription("Mark a task as complete. For recurring tasks, this will close the current occurrence and create the next one."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID to complete"),
		),
	)

	s.AddTool(completeTaskTool, common.InstrumentedToolHandlerWithResource(
		"todoist_complete_task", "tasks", "complete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCompleteTask(ctx, request, sc)
		}))

	reopenTaskTool := mcp.NewTool("todoist_reopen_task",
		mcp.WithDescription("Reopen a completed task."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID to reopen"),
		),
	)

	s.AddTool(reopenTaskTool, common.InstrumentedToolHandlerWithResource(
		"todoist_reopen_task", "tasks", "reopen", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReopenTask(ctx, request, sc)
		}))

	deleteTaskTool := mcp.NewTool("todoist_delete_task",
		mcp.WithDescription("Permanently delete a task. ⚠️ This action cannot be undone. The task will be permanently removed."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID to delete"),
		),
	)

	s.AddTool(deleteTaskTool, common.InstrumentedToolHandlerWithResource(
		"todoist_delete_task", "tasks", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteTask(ctx, request, sc)
		}))
}

func handleListTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	limit, err := common.IntInRange(args, "limit", defaultTaskLimit, 1, maxTaskLimit)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	format, err := common.ResponseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	query := url.Values{}
	if projectID := common.OptionalString(args, "project_id"); projectID != "" {
		query.Set("project_id", projectID)
	}
	if label := common.OptionalString(args, "label"); label != "" {
		query.Set("label", label)
	}
	if filter := common.OptionalString(args, "filter"); filter != "" {
		query.Set("filter", filter)
	}

	tasks, err := sc.TodoistClient().ListTasks(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	if len(tasks) == 0 {
		return mcp.NewToolResultText("No tasks found matching your criteria."), nil
	}

	// The REST API has no limit parameter; trim client-side.
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}

	if format == render.FormatJSON {
		return mcp.NewToolResultText(render.JSON(tasks)), nil
	}
	return mcp.NewToolResultText(render.TaskList(tasks)), nil
}

func handleGetTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskID, err := common.RequiredString(args, "task_id")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	format, err := common.ResponseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	task, err := sc.TodoistClient().GetTask(ctx, taskID)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	if format == render.FormatJSON {
		return mcp.NewToolResultText(render.JSON(task)), nil
	}
	return mcp.NewToolResultText(render.TaskDetail(task)), nil
}

func handleCreateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	content, err := common.RequiredBoundedString(args, "content", maxContentLength)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	description, err := common.BoundedString(args, "description", maxDescriptionLength)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	dueDate, err := common.OptionalDate(args, "due_date")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	priority, err := common.OptionalPriority(args)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	labels, _, err := common.StringList(args, "labels")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	body := map[string]any{"content": content}
	if description != "" {
		body["description"] = description
	}
	if projectID := common.OptionalString(args, "project_id"); projectID != "" {
		body["project_id"] = projectID
	}
	// due_string wins over due_date when both are supplied.
	if dueString := common.OptionalString(args, "due_string"); dueString != "" {
		body["due_string"] = dueString
	} else if dueDate != "" {
		body["due_date"] = dueDate
	}
	if priority != 0 {
		body["priority"] = priority
	}
	if len(labels) > 0 {
		body["labels"] = labels
	}
	if parentID := common.OptionalString(args, "parent_id"); parentID != "" {
		body["parent_id"] = parentID
	}

	task, err := sc.TodoistClient().CreateTask(ctx, body)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	return mcp.NewToolResultText(render.CreatedTask(task)), nil
}

func handleUpdateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskID, err := common.RequiredString(args, "task_id")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	content, err := common.BoundedString(args, "content", maxContentLength)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	dueDate, err := common.OptionalDate(args, "due_date")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	priority, err := common.OptionalPriority(args)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	labels, labelsProvided, err := common.StringList(args, "labels")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	body := map[string]any{}
	if content != "" {
		body["content"] = content
	}
	// An explicit empty description clears the field, so presence matters.
	if raw, ok := args["description"]; ok && raw != nil {
		description, err := common.BoundedString(args, "description", maxDescriptionLength)
		if err != nil {
			return mcp.NewToolResultError(common.FormatToolError(err)), nil
		}
		body["description"] = description
	}
	if dueString := common.OptionalString(args, "due_string"); dueString != "" {
		body["due_string"] = dueString
	} else if dueDate != "" {
		body["due_date"] = dueDate
	}
	if priority != 0 {
		body["priority"] = priority
	}
	// An empty labels list replaces existing labels with none.
	if labelsProvided {
		body["labels"] = labels
	}

	if len(body) == 0 {
		return mcp.NewToolResultError("Error: No fields to update. Provide at least one field to change."), nil
	}

	task, err := sc.TodoistClient().UpdateTask(ctx, taskID, body)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("✅ Updated task **%s** (ID: `%s`)",
		task.String("content"), task.String("id"))), nil
}

func handleCompleteTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskID, err := common.RequiredString(args, "task_id")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	if err := sc.TodoistClient().CloseTask(ctx, taskID); err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("✅ Completed task (ID: `%s`)", taskID)), nil
}

func handleReopenTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskID, err := common.RequiredString(args, "task_id")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	if err := sc.TodoistClient().ReopenTask(ctx, taskID); err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("✅ Reopened task (ID: `%s`)", taskID)), nil
}

func handleDeleteTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskID, err := common.RequiredString(args, "task_id")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	if err := sc.TodoistClient().DeleteTask(ctx, taskID); err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("🗑️ Deleted task (ID: `%s`)", taskID)), nil
}

package project_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/todoist-tools/todoist-mcp/internal/render"
	"github.com/todoist-tools/todoist-mcp/internal/server"
	"github.com/todoist-tools/todoist-mcp/internal/tools/common"
)

// RegisterProjectTools registers all project-related tools with the MCP server.
// Write tools are skipped when readOnly is true.
func RegisterProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listProjectsTool := mcp.NewTool("todoist_list_projects",
		mcp.WithDescription("List all projects in your Todoist account. Returns all projects including personal projects, shared projects, and sub-projects. Use this to get project IDs for creating tasks in specific projects."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("response_format",
			mcp.Description("Output format: 'markdown' for human-readable or 'json' for machine-readable"),
			mcp.Enum("markdown", "json"),
			mcp.DefaultString("markdown"),
		),
	)

	s.AddTool(listProjectsTool, common.InstrumentedToolHandlerWithResource(
		"todoist_list_projects", "projects", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListProjects(ctx, request, sc)
		}))

	getProjectTool := mcp.NewTool("todoist_get_project",
		mcp.WithDescription("Get details of a specific project, including name, color, and metadata."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID (e.g., '2203306141')"),
		),
		mcp.WithString("response_format",
			mcp.Description("Output format: 'markdown' or 'json'"),
			mcp.Enum("markdown", "json"),
			mcp.DefaultString("markdown"),
		),
	)

	s.AddTool(getProjectTool, common.InstrumentedToolHandlerWithResource(
		"todoist_get_project", "projects", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetProject(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createProjectTool := mcp.NewTool("todoist_create_project",
		mcp.WithDescription("Create a new project in Todoist. Returns the created project details including the new project ID."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the project (e.g., 'Work Tasks', 'Home Renovation')"),
			mcp.MinLength(1),
			mcp.MaxLength(500),
		),
		mcp.WithString("parent_id",
			mcp.Description("Parent project ID to create as a sub-project"),
		),
		mcp.WithString("color",
			mcp.Description("Color name: berry_red, red, orange, yellow, olive_green, lime_green, green, mint_green, teal, sky_blue, light_blue, blue, grape, violet, lavender, magenta, salmon, charcoal, grey, taupe"),
		),
		mcp.WithBoolean("is_favorite",
			mcp.Description("Whether to mark as favorite"),
			mcp.DefaultBool(false),
		),
	)

	s.AddTool(createProjectTool, common.InstrumentedToolHandlerWithResource(
		"todoist_create_project", "projects", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateProject(ctx, request, sc)
		}))

	return nil
}

func handleListProjects(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	format, err := common.ResponseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	projects, err := sc.TodoistClient().ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	if len(projects) == 0 {
		return mcp.NewToolResultText("No projects found."), nil
	}

	if format == render.FormatJSON {
		return mcp.NewToolResultText(render.JSON(projects)), nil
	}
	return mcp.NewToolResultText(render.ProjectList(projects)), nil
}

func handleGetProject(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.RequiredString(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}
	format, err := common.ResponseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	project, err := sc.TodoistClient().GetProject(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	if format == render.FormatJSON {
		return mcp.NewToolResultText(render.JSON(project)), nil
	}
	return mcp.NewToolResultText(render.ProjectDetail(project)), nil
}

func handleCreateProject(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, err := common.RequiredBoundedString(args, "name", 500)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	body := map[string]any{"name": name}
	if parentID := common.OptionalString(args, "parent_id"); parentID != "" {
		body["parent_id"] = parentID
	}
	if color := common.OptionalString(args, "color"); color != "" {
		body["color"] = color
	}
	if favorite, _ := args["is_favorite"].(bool); favorite {
		body["is_favorite"] = favorite
	}

	project, err := sc.TodoistClient().CreateProject(ctx, body)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("✅ Created project **%s** (ID: `%s`)",
		project.String("name"), project.String("id"))), nil
}

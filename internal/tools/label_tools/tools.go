package label_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/todoist-tools/todoist-mcp/internal/render"
	"github.com/todoist-tools/todoist-mcp/internal/server"
	"github.com/todoist-tools/todoist-mcp/internal/tools/common"
)

const maxLabelNameLength = 255

// RegisterLabelTools registers all label-related tools with the MCP server.
// Write tools are skipped when readOnly is true.
func RegisterLabelTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listLabelsTool := mcp.NewTool("todoist_list_labels",
		mcp.WithDescription("List all personal labels in your Todoist account. Labels can be applied to tasks for organization and filtering."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("response_format",
			mcp.Description("Output format: 'markdown' or 'json'"),
			mcp.Enum("markdown", "json"),
			mcp.DefaultString("markdown"),
		),
	)

	s.AddTool(listLabelsTool, common.InstrumentedToolHandlerWithResource(
		"todoist_list_labels", "labels", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListLabels(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createLabelTool := mcp.NewTool("todoist_create_label",
		mcp.WithDescription("Create a new label. Labels help organize tasks across projects. Apply labels to tasks for easy filtering."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Label name (e.g., 'urgent', 'work', 'personal')"),
			mcp.MinLength(1),
			mcp.MaxLength(maxLabelNameLength),
		),
		mcp.WithString("color",
			mcp.Description("Color name: berry_red, red, orange, yellow, olive_green, lime_green, green, mint_green, teal, sky_blue, light_blue, blue, grape, violet, lavender, magenta, salmon, charcoal, grey, taupe"),
		),
		mcp.WithBoolean("is_favorite",
			mcp.Description("Whether to mark as favorite"),
			mcp.DefaultBool(false),
		),
	)

	s.AddTool(createLabelTool, common.InstrumentedToolHandlerWithResource(
		"todoist_create_label", "labels", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateLabel(ctx, request, sc)
		}))

	return nil
}

func handleListLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	format, err := common.ResponseFormat(args)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	labels, err := sc.TodoistClient().ListLabels(ctx)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	if len(labels) == 0 {
		return mcp.NewToolResultText("No labels found. Create labels to organize your tasks."), nil
	}

	if format == render.FormatJSON {
		return mcp.NewToolResultText(render.JSON(labels)), nil
	}
	return mcp.NewToolResultText(render.LabelList(labels)), nil
}

func handleCreateLabel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, err := common.RequiredBoundedString(args, "name", maxLabelNameLength)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	body := map[string]any{"name": name}
	if color := common.OptionalString(args, "color"); color != "" {
		body["color"] = color
	}
	if favorite, _ := args["is_favorite"].(bool); favorite {
		body["is_favorite"] = favorite
	}

	label, err := sc.TodoistClient().CreateLabel(ctx, body)
	if err != nil {
		return mcp.NewToolResultError(common.FormatToolError(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("✅ Created label **%s** (ID: `%s`)",
		label.String("name"), label.String("id"))), nil
}

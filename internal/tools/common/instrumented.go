package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/todoist-tools/todoist-mcp/internal/instrumentation"
	"github.com/todoist-tools/todoist-mcp/internal/server"
)

// ToolHandler is the mcp-go handler signature shared by all tools.
type ToolHandler = mcpserver.ToolHandlerFunc

// InstrumentedToolHandler wraps a tool handler with metrics and audit logging.
// It records tool invocation metrics and logs the invocation for audit purposes.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return InstrumentedToolHandlerWithResource(toolName, "", "", sc, handler)
}

// InstrumentedToolHandlerWithResource is like InstrumentedToolHandler but also
// records the Todoist resource (projects, tasks, labels) and operation type,
// producing per-API-operation metrics in addition to the tool metrics.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithResource("todoist_list_tasks", "tasks", "list", sc, handler))
func InstrumentedToolHandlerWithResource(
	toolName string,
	resource string,
	operation string,
	sc *server.ServerContext,
	handler ToolHandler,
) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		// No instrumentation configured: call straight through.
		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)
		if resource != "" {
			invocation.WithResource(resource, operation)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				invocation.CompleteWithError(err)
			} else {
				invocation.Complete(false, nil)
			}
		} else {
			invocation.CompleteSuccess()
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
			if resource != "" {
				metrics.RecordAPIOperation(ctx, resource, operation, status, duration)
			}
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}

// Package label_tools provides MCP (Model Context Protocol) tools for Todoist label operations.
//
// Labels cut across projects; this package exposes listing and creating them
// through a standardized MCP interface.
package label_tools

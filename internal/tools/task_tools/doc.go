// Package task_tools provides MCP (Model Context Protocol) tools for Todoist task operations.
//
// This package exposes task listing, lookup, creation, updates, and lifecycle
// operations (complete, reopen, delete) through a standardized MCP interface.
// Write operations are registered only when the server runs with writes enabled.
package task_tools

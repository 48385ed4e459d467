// Package common provides shared utilities for MCP tool implementations:
// argument extraction and validation, the total error-to-message formatter,
// and the instrumentation wrapper applied to every tool handler.
package common

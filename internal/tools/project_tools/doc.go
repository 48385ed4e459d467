// Package project_tools provides MCP (Model Context Protocol) tools for Todoist project operations.
//
// This package exposes project listing, lookup, and creation through a standardized
// MCP interface, allowing AI assistants to organize work into Todoist projects.
package project_tools

// Package server provides the MCP server context, the streamable HTTP
// transport, and operational endpoints for the todoist-mcp application.
//
// # Key Components
//
// ServerContext holds the Todoist API client and the observability hooks
// (metrics recorder, audit logger) shared by all tool handlers. The client
// reads its API token from the environment per request, so tools surface a
// configuration error at call time rather than failing server startup.
//
// HTTPServer serves the MCP protocol over streamable HTTP on /mcp and
// registers health check endpoints (/healthz, /readyz, /healthz/detailed)
// for Kubernetes probes.
//
// MetricsServer exposes Prometheus metrics on a dedicated port, isolating
// operational metrics from MCP client traffic.
package server

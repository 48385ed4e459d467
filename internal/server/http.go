package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPServer serves the MCP protocol over streamable HTTP.
// It exposes the MCP endpoint on /mcp alongside health check endpoints
// for Kubernetes probes.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	httpServer    *http.Server
	healthChecker *HealthChecker
}

// NewHTTPServer creates a new streamable HTTP server for MCP.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext) *HTTPServer {
	return &HTTPServer{
		mcpServer:     mcpServer,
		healthChecker: NewHealthChecker(sc),
	}
}

// HealthChecker returns the health checker used by this server.
func (s *HTTPServer) HealthChecker() *HealthChecker {
	return s.healthChecker
}

// Start starts the HTTP server in a blocking manner.
// Call Shutdown to stop it gracefully.
func (s *HTTPServer) Start(addr string) error {
	mux := http.NewServeMux()

	// Register MCP endpoint
	streamableServer := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath("/mcp"),
	)
	mux.Handle("/mcp", streamableServer)

	// Register health check endpoints for Kubernetes probes
	s.healthChecker.RegisterHealthEndpoints(mux)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("starting streamable HTTP server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.healthChecker.SetReady(false)
	if s.httpServer != nil {
		slog.Info("shutting down streamable HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

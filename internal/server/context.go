package server

import (
	"context"
	"sync"

	"github.com/todoist-tools/todoist-mcp/internal/instrumentation"
	"github.com/todoist-tools/todoist-mcp/internal/todoist"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx           context.Context
	cancel        context.CancelFunc
	todoistClient *todoist.Client
	metrics       *instrumentation.Metrics
	auditLogger   *instrumentation.AuditLogger
	mu            sync.RWMutex
	shutdown      bool
}

// NewServerContext creates a new server context.
// The Todoist client reads its API token from the environment on each
// request, so server startup succeeds even without a token configured.
func NewServerContext(ctx context.Context) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		todoistClient: todoist.NewClient(),
		shutdown:      false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// TodoistClient returns the Todoist API client
func (sc *ServerContext) TodoistClient() *todoist.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.todoistClient
}

// SetTodoistClient sets the Todoist API client (used in tests)
func (sc *ServerContext) SetTodoistClient(client *todoist.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.todoistClient = client
}

// SetMetrics sets the metrics recorder for instrumentation
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder (may be nil if instrumentation is disabled)
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool invocation logging
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
}

// AuditLogger returns the audit logger (may be nil if audit logging is disabled)
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}

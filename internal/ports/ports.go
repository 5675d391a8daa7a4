// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core depends on these abstractions; concrete adapters live
// in the infrastructure layer (HTTP clients, the key-value store, SQLite,
// the CLI). Services stay testable against in-memory stubs.
package ports

import (
	"context"
	"encoding/json"

	"github.com/wareops/opsctl/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.opsctl/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// KeyValueStore is a string-keyed persistence surface. The history and
// scenario stores target it so the same logic can run against a file-backed
// store or an in-memory stub without changes.
type KeyValueStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Clear() error
}

// HistoryRepository is the bounded, newest-first execution log.
type HistoryRepository interface {
	// Record assigns a fresh id and timestamp when absent, prepends the
	// entry, truncates to the cap, and persists before returning. A persist
	// failure is swallowed after logging: the in-memory log stays
	// authoritative for the session.
	Record(entry domain.ExecutionEntry) (domain.ExecutionEntry, error)
	// Entries returns the log newest-first. A corrupt or missing backing
	// store yields an empty log, never an error.
	Entries() ([]domain.ExecutionEntry, error)
	// Prune keeps only the keep newest entries and reports how many were
	// removed.
	Prune(keep int) (int, error)
	Clear() error
	ExportJSONL(dest string) error
}

// ScenarioRepository persists saved workflow-test scenarios.
type ScenarioRepository interface {
	Save(scenario domain.Scenario) (domain.Scenario, error)
	List() ([]domain.Scenario, error)
	// Touch stamps LastUsed on replay.
	Touch(id string) (domain.Scenario, error)
	Delete(id string) error
}

// SessionStore holds the bearer token and decoded user snapshot.
type SessionStore interface {
	Token() (string, bool)
	User() (domain.User, bool)
	SetSession(session domain.Session) error
	ClearSession() error
}

// ParameterValidator checks invocation parameters against a tool's declared
// schema before any network call is made.
type ParameterValidator interface {
	Validate(tool domain.Tool, params map[string]any) error
}

// ToolService is the MCP surface consumed by the execute service.
type ToolService interface {
	Status(ctx context.Context) (domain.MCPStatus, error)
	Tools(ctx context.Context) ([]domain.Tool, error)
	Search(ctx context.Context, query string) ([]domain.Tool, error)
	Execute(ctx context.Context, toolID string, params map[string]any) (json.RawMessage, error)
	TestWorkflow(ctx context.Context, message, sessionID string) (json.RawMessage, error)
	Agents(ctx context.Context) (map[string]domain.AgentInfo, error)
	RefreshDiscovery(ctx context.Context) (int, error)
}

// DocumentService is the document-processing surface consumed by the monitor.
type DocumentService interface {
	Upload(ctx context.Context, path, documentType, userID string) (string, error)
	Status(ctx context.Context, documentID string) (domain.StatusReport, error)
	Results(ctx context.Context, documentID string) (domain.ExtractionResult, error)
	Search(ctx context.Context, query string) (json.RawMessage, error)
	Analytics(ctx context.Context) (domain.AnalyticsReport, error)
	Approve(ctx context.Context, documentID, approverID, notes string) error
	Reject(ctx context.Context, documentID, rejectorID, reason string, suggestions []string) error
}

// Logger provides structured logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

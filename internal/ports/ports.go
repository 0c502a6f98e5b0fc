// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like databases, shell emitters, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., ToolProber, PromptEngineFactory)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/shrc/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.config/shrc/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// EnvironmentCollector snapshots the per-session signals (terminal type,
// TTY-ness, shell, user/host, disable overrides) exactly once at startup.
// The snapshot is immutable; feature decisions never read ambient state again.
type EnvironmentCollector interface {
	Collect() domain.Environment
}

// ToolProber reports whether an executable resolves on the search path.
// Implementations memoize within the process but never across sessions.
type ToolProber interface {
	Available(name string) bool
}

// PromptEngine renders prompt initialization for a selected engine.
// The static engine is always constructible and never fails.
type PromptEngine interface {
	Name() string
	InitFor(shell domain.ShellName) domain.PromptInit
}

// PromptEngineFactory selects a prompt engine from the configured probe
// order, falling back to the static engine when no binary resolves.
type PromptEngineFactory interface {
	Resolve(order []string, fallback string, prober ToolProber) PromptEngine
}

// ScriptEmitter renders a resolved session plan into shell script text.
type ScriptEmitter interface {
	Render(plan domain.ScriptPlan) (string, error)
}

// CompletionCache manages the completion subsystem's cache artifacts: the
// cache directory, the completion dump, and its compiled form. The cache
// contents themselves belong to the shell's completion engine.
type CompletionCache interface {
	Dir() string
	DumpPath() string
	// EnsureDir creates the cache directory when absent. It reports whether
	// a creation call was made; re-running with the directory present must
	// not issue a redundant call.
	EnsureDir() (created bool, err error)
	// CompileIfStale compiles the dump only when the compiled artifact is
	// missing or older than the dump. No-op (false, nil) otherwise.
	CompileIfStale(ctx context.Context) (compiled bool, err error)
	Clear() error
}

// SessionStore persists activation records.
type SessionStore interface {
	Save(domain.SessionRecord) error
	Recent(limit int) ([]domain.SessionRecord, error)
	Stats() (domain.SessionStats, error)
	Clear() error
}

// PluginAuditor checks plugin files and directories for unsafe permissions
// before they are sourced into the session.
type PluginAuditor interface {
	Audit(paths []string) []domain.AuditFinding
}

// ShellIntegrator manages the rc-file integration line for bash and zsh.
type ShellIntegrator interface {
	Install(shell string, force bool) (domain.ShellInstallResult, error)
	Uninstall(shell string) (domain.ShellInstallResult, error)
	Status(shell string) domain.ShellStatus
	DetectShell() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

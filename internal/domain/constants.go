package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the default permission for generated files (rw-r--r--)
	FilePermissions = 0o644
)

// Feature resolution defaults
const (
	// DefaultListingTool is the enhanced directory lister probed by default.
	DefaultListingTool = "eza"
	// DefaultPromptFallback is the static prompt when no engine resolves.
	DefaultPromptFallback = "%n@%m %1~ %# "
	// DefaultTitleFormat is the window-title template.
	DefaultTitleFormat = "%n@%m: %~"
)

// History policy defaults
const (
	// DefaultHistorySize is the in-memory history capacity.
	DefaultHistorySize = 50000
	// DefaultHistorySaveSize is the on-disk history capacity.
	DefaultHistorySaveSize = 50000
)

// Session log constants
const (
	// DefaultSessionListLimit is the default number of records shown by
	// `shrc sessions list`.
	DefaultSessionListLimit = 20
	// MaxSessionAnalysisRecords caps how many records stats aggregate over.
	MaxSessionAnalysisRecords = 1000
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

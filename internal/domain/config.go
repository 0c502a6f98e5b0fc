package domain

// Config mirrors ~/.config/shrc/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Features            FeatureToggles     `yaml:"features"`
	Prompt              PromptSettings     `yaml:"prompt"`
	History             HistorySettings    `yaml:"history"`
	Completion          CompletionSettings `yaml:"completion"`
	Listing             ListingSettings    `yaml:"listing"`
	Title               TitleSettings      `yaml:"title"`
	Plugins             []PluginSpec       `yaml:"plugins"`
}

// FeatureToggles captures per-feature user overrides. A nil pointer means
// "auto": decide from terminal capability and tool availability. An explicit
// false always disables the feature outside of auto resolution.
type FeatureToggles struct {
	Prompt          *bool `yaml:"prompt"`
	Autosuggestions *bool `yaml:"autosuggestions"`
	Lister          *bool `yaml:"lister"`
	Title           *bool `yaml:"title"`
}

// PromptSettings configures prompt engine selection.
type PromptSettings struct {
	// Engines is the probe order for external prompt binaries.
	Engines []string `yaml:"engines"`
	// Fallback is the static prompt used when no engine resolves.
	// %n and %m expand to user and short host in the emitted script.
	Fallback string `yaml:"fallback"`
}

// HistorySettings are policy knobs for the shell-owned history store.
// The store itself (persistence, trimming, locking) belongs to the shell
// runtime; shrc only renders these into exports and setopt lines.
type HistorySettings struct {
	File               string `yaml:"file"`
	Size               int    `yaml:"size"`
	SaveSize           int    `yaml:"save_size"`
	IgnoreDups         bool   `yaml:"ignore_dups"`
	IgnoreSpace        bool   `yaml:"ignore_space"`
	EraseDups          bool   `yaml:"erase_dups"`
	ShareSessions      bool   `yaml:"share_sessions"`
	ExtendedTimestamps bool   `yaml:"extended_timestamps"`
}

// CompletionSettings configures the completion cache artifacts.
type CompletionSettings struct {
	// CacheDir overrides the XDG-derived cache directory.
	CacheDir string `yaml:"cache_dir"`
	// DumpFile overrides the completion dump path inside the cache dir.
	DumpFile string `yaml:"dump_file"`
	// CompileDump controls opportunistic compilation of the dump.
	CompileDump *bool `yaml:"compile_dump"`
}

// ListingSettings configures directory listing aliases.
type ListingSettings struct {
	// Tool is the enhanced lister binary to probe for.
	Tool string `yaml:"tool"`
}

// TitleSettings configures the window-title hook.
type TitleSettings struct {
	// Format is the title template; %n and %m expand as in the prompt.
	Format string `yaml:"format"`
}

// PluginSpec names a plugin file to source during session startup.
type PluginSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	// Role marks special plugins; see PluginRole constants.
	Role PluginRole `yaml:"role,omitempty"`
}

// PluginRole distinguishes ordinary plugins from the defer shim.
type PluginRole string

const (
	// PluginRoleDefault plugins are queued behind the defer shim when one
	// is configured and loadable.
	PluginRoleDefault PluginRole = ""
	// PluginRoleDeferShim marks the deferred-loading shim itself; it is
	// always sourced synchronously, never deferred.
	PluginRoleDeferShim PluginRole = "defer-shim"
)

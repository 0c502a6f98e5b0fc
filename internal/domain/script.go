package domain

// Alias binds a shell alias name to its expansion.
type Alias struct {
	Name    string
	Command string
}

// ListingKind enumerates the closed set of listing strategies.
type ListingKind string

const (
	ListingPlain    ListingKind = "plain"
	ListingEnhanced ListingKind = "enhanced"
)

// ListingStrategy is chosen once per session; it is never re-selected and
// the alias set is fixed per kind.
type ListingStrategy struct {
	Kind ListingKind
	Tool string // enhanced binary name; empty for plain
}

// Aliases returns the alias set for the strategy. Plain keeps the four
// standard aliases on colored ls; enhanced rebinds them to the tool and adds
// a tree view.
func (s ListingStrategy) Aliases() []Alias {
	if s.Kind == ListingEnhanced && s.Tool != "" {
		return []Alias{
			{Name: "ls", Command: s.Tool + " --group-directories-first"},
			{Name: "la", Command: s.Tool + " -a --group-directories-first"},
			{Name: "ll", Command: s.Tool + " -l --group-directories-first --git"},
			{Name: "lla", Command: s.Tool + " -la --group-directories-first --git"},
			{Name: "lt", Command: s.Tool + " --tree --level=2"},
		}
	}
	return []Alias{
		{Name: "ls", Command: "ls --color=auto"},
		{Name: "la", Command: "ls --color=auto -A"},
		{Name: "ll", Command: "ls --color=auto -l"},
		{Name: "lla", Command: "ls --color=auto -lA"},
	}
}

// PluginSource is one unit of plugin configuration to source at startup.
type PluginSource struct {
	Name string
	Path string
}

// DeferQueue holds plugin sources scheduled to run after the session
// becomes interactive-ready. FIFO: units execute in the order pushed.
// Process lifetime bounds the queue; there is no cancellation.
type DeferQueue struct {
	items []PluginSource
}

// Push appends a source unit to the back of the queue.
func (q *DeferQueue) Push(p PluginSource) {
	q.items = append(q.items, p)
}

// Drain returns all queued units in FIFO order and empties the queue.
func (q *DeferQueue) Drain() []PluginSource {
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued units.
func (q *DeferQueue) Len() int {
	return len(q.items)
}

// PromptInit is the resolved prompt strategy for the session.
type PromptInit struct {
	// Engine is the selected engine name; "static" when falling back.
	Engine string
	// InitLine is the eval line delegating to the engine binary.
	// Empty when UseFallback is set.
	InitLine string
	// Fallback is the static prompt template used when no engine resolves
	// or the prompt feature is disabled.
	Fallback string
	// UseFallback selects the static prompt over engine delegation.
	UseFallback bool
}

// CompletionPlan carries the cache paths the emitted script needs.
type CompletionPlan struct {
	CacheDir string
	DumpPath string
}

// ScriptPlan is the fully resolved session: everything the emitter needs to
// render the startup script. Built once by the activator; immutable after.
type ScriptPlan struct {
	Shell      ShellName
	Features   FeatureSet
	Prompt     PromptInit
	History    HistorySettings
	Completion CompletionPlan
	Aliases    []Alias
	TitleFmt   string
	PreHook    string // sourced before shrc sections when the file exists
	PostHook   string // sourced after all sections when the file exists
	// DeferShim, when non-nil, is sourced synchronously ahead of the queue.
	DeferShim *PluginSource
	// Deferred plugins emit behind the shim in FIFO order; when the shim is
	// absent they are sourced synchronously, still in order.
	Deferred []PluginSource
}

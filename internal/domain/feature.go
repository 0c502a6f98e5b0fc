package domain

// Feature identifies an optional session capability.
type Feature string

const (
	FeaturePrompt          Feature = "prompt"
	FeatureAutosuggestions Feature = "autosuggestions"
	FeatureLister          Feature = "lister"
	FeatureTitle           Feature = "title"
)

// AllFeatures lists every gated capability.
var AllFeatures = []Feature{FeaturePrompt, FeatureAutosuggestions, FeatureLister, FeatureTitle}

// FeatureSet gates optional session functionality. Resolved exactly once at
// session start and never re-evaluated mid-session.
type FeatureSet struct {
	Prompt          bool // external prompt engine active
	Autosuggestions bool // inline autosuggestion plugin loads
	EnhancedLister  bool // listing aliases rebound to the enhanced tool
	WindowTitle     bool // precmd title hook emitted
}

// Enabled reports whether a named feature is active.
func (s FeatureSet) Enabled(f Feature) bool {
	switch f {
	case FeaturePrompt:
		return s.Prompt
	case FeatureAutosuggestions:
		return s.Autosuggestions
	case FeatureLister:
		return s.EnhancedLister
	case FeatureTitle:
		return s.WindowTitle
	}
	return false
}

// Terminal is the startup snapshot of the terminal context.
type Terminal struct {
	Term string // $TERM as seen at startup
	// TTY reports whether the session is attached to a terminal. Probed on
	// stderr: stdout is a command-substitution pipe in the normal
	// eval "$(shrc init ...)" invocation, so it carries no signal.
	TTY bool
}

// Minimal reports whether the session runs in a raw/restricted terminal
// where advanced rendering must stay off regardless of overrides.
func (t Terminal) Minimal() bool {
	return t.Term == "" || t.Term == "dumb" || !t.TTY
}

// Environment is the immutable per-session signal snapshot the activator
// works from. Built once; feature decisions never read ambient state again.
type Environment struct {
	Terminal Terminal
	Shell    ShellName
	User     string
	Host     string
	// Disabled holds per-feature disable overrides from SHRC_DISABLE_*
	// environment variables, merged ahead of config toggles.
	Disabled map[Feature]bool
}

// DisabledByEnv reports whether an env override disables the feature.
func (e Environment) DisabledByEnv(f Feature) bool {
	return e.Disabled[f]
}

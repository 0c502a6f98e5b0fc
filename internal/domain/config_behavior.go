package domain

// DefaultPromptEngines is the probe order used when config leaves
// prompt.engines empty.
var DefaultPromptEngines = []string{"starship", "oh-my-posh"}

// EngineOrder returns the configured probe order, or the default chain.
func (c Config) EngineOrder() []string {
	if len(c.Prompt.Engines) > 0 {
		return c.Prompt.Engines
	}
	return DefaultPromptEngines
}

// ListingTool returns the enhanced lister binary name.
func (c Config) ListingTool() string {
	if c.Listing.Tool != "" {
		return c.Listing.Tool
	}
	return DefaultListingTool
}

// PromptFallback returns the static prompt template used when no engine
// binary resolves.
func (c Config) PromptFallback() string {
	if c.Prompt.Fallback != "" {
		return c.Prompt.Fallback
	}
	return DefaultPromptFallback
}

// TitleFormat returns the window-title template.
func (c Config) TitleFormat() string {
	if c.Title.Format != "" {
		return c.Title.Format
	}
	return DefaultTitleFormat
}

// CompileDump reports whether the completion dump should be compiled
// opportunistically. Defaults to true.
func (c Config) CompileDump() bool {
	if c.Completion.CompileDump == nil {
		return true
	}
	return *c.Completion.CompileDump
}

// HistoryPolicy resolves history knobs with defaults applied.
func (c Config) HistoryPolicy() HistorySettings {
	h := c.History
	if h.Size <= 0 {
		h.Size = DefaultHistorySize
	}
	if h.SaveSize <= 0 {
		h.SaveSize = DefaultHistorySaveSize
	}
	return h
}

// DeferShim returns the configured defer shim plugin, if any.
func (c Config) DeferShim() (PluginSpec, bool) {
	for _, p := range c.Plugins {
		if p.Role == PluginRoleDeferShim {
			return p, true
		}
	}
	return PluginSpec{}, false
}

// OrdinaryPlugins returns non-shim plugins in configuration order.
func (c Config) OrdinaryPlugins() []PluginSpec {
	var out []PluginSpec
	for _, p := range c.Plugins {
		if p.Role == PluginRoleDeferShim {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Toggle returns the override pointer for a feature, nil when the feature
// is unknown.
func (t FeatureToggles) Toggle(f Feature) *bool {
	switch f {
	case FeaturePrompt:
		return t.Prompt
	case FeatureAutosuggestions:
		return t.Autosuggestions
	case FeatureLister:
		return t.Lister
	case FeatureTitle:
		return t.Title
	}
	return nil
}

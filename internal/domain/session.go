package domain

import "time"

// SessionRecord captures one activation of the bootstrap.
type SessionRecord struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Shell           string    `json:"shell"`
	Term            string    `json:"term"`
	Prompt          bool      `json:"prompt"`
	Autosuggestions bool      `json:"autosuggestions"`
	EnhancedLister  bool      `json:"enhanced_lister"`
	WindowTitle     bool      `json:"window_title"`
	PromptEngine    string    `json:"prompt_engine"`
	ResolveTimeMS   int64     `json:"resolve_time_ms"`
}

// SessionStats aggregates the activation log.
type SessionStats struct {
	Total               int
	PromptEnabled       int
	SuggestEnabled      int
	ListerEnabled       int
	TitleEnabled        int
	AvgResolveTimeMS    int64
	EnginesSeen         map[string]int
	FirstSeen, LastSeen time.Time
}

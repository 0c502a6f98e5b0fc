// Package activate resolves the per-session feature set and builds the
// script plan the emitter renders.
//
// Every decision runs exactly once at session start. The priority chain per
// feature: a minimal/raw terminal force-disables advanced rendering; an
// explicit disable override (env or config) wins next; otherwise the
// feature is enabled iff its backing executable resolves, with a built-in
// fallback when it does not. No branch is an error.
package activate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/pkg/filesystem"
	"github.com/doeshing/shrc/internal/ports"
)

// Request parameterizes one activation.
type Request struct {
	Context context.Context
	// Shell overrides auto-detection ("zsh" or "bash").
	Shell string
	// SkipLog suppresses the session record (used by doctor dry runs).
	SkipLog bool
}

// Result is the resolved session plus bookkeeping for callers.
type Result struct {
	Plan    domain.ScriptPlan
	Record  domain.SessionRecord
	Skipped []domain.AuditFinding
}

// Service orchestrates session activation end-to-end.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Environment    ports.EnvironmentCollector
	Prober         ports.ToolProber
	PromptEngines  ports.PromptEngineFactory
	Cache          ports.CompletionCache
	Auditor        ports.PluginAuditor
	Sessions       ports.SessionStore
	Logger         ports.Logger
	Clock          func() time.Time
}

// Resolve computes the session plan.
func (s *Service) Resolve(req Request) (Result, error) {
	if s.ConfigProvider == nil || s.Environment == nil || s.Prober == nil ||
		s.PromptEngines == nil || s.Cache == nil || s.Logger == nil {
		return Result{}, errors.New("activate.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now
	if s.Clock != nil {
		now = s.Clock
	}
	started := now()

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load config: %w", err)
	}

	env := s.Environment.Collect()
	shell := resolveShell(req.Shell, env)

	features, engine := s.resolveFeatures(cfg, env, shell)
	plan := domain.ScriptPlan{
		Shell:    shell,
		Features: features,
		History:  cfg.HistoryPolicy(),
		Aliases:  listingStrategy(cfg, features).Aliases(),
		TitleFmt: cfg.TitleFormat(),
		PreHook:  filepath.Join(filesystem.ConfigDir(), "pre."+string(shell)),
		PostHook: filepath.Join(filesystem.ConfigDir(), "post."+string(shell)),
	}
	plan.Prompt = promptInit(engine, features, cfg, shell)

	result := Result{Plan: plan}
	s.prepareCompletion(ctx, &result.Plan)
	result.Skipped = s.queuePlugins(cfg, features, &result.Plan)

	record := domain.SessionRecord{
		ID:              uuid.NewString(),
		Timestamp:       started,
		Shell:           string(shell),
		Term:            env.Terminal.Term,
		Prompt:          features.Prompt,
		Autosuggestions: features.Autosuggestions,
		EnhancedLister:  features.EnhancedLister,
		WindowTitle:     features.WindowTitle,
		PromptEngine:    result.Plan.Prompt.Engine,
		ResolveTimeMS:   now().Sub(started).Milliseconds(),
	}
	result.Record = record

	if !req.SkipLog && s.Sessions != nil {
		if err := s.Sessions.Save(record); err != nil {
			s.Logger.Warn("session log unavailable", map[string]interface{}{"error": err.Error()})
		}
	}

	return result, nil
}

// resolveFeatures walks the priority chain for each feature and picks the
// prompt engine. The returned engine is nil when the prompt feature is off.
func (s *Service) resolveFeatures(cfg domain.Config, env domain.Environment, shell domain.ShellName) (domain.FeatureSet, ports.PromptEngine) {
	var set domain.FeatureSet

	set.Prompt = s.decide(domain.FeaturePrompt, cfg, env, func() bool {
		// engine availability is checked during selection below; the
		// static fallback keeps the feature meaningful either way
		return true
	})
	set.Autosuggestions = s.decide(domain.FeatureAutosuggestions, cfg, env, func() bool {
		return hasPlugin(cfg, "autosuggestions")
	})
	set.EnhancedLister = s.decide(domain.FeatureLister, cfg, env, func() bool {
		return s.Prober.Available(cfg.ListingTool())
	})

	// the title hook renders through the terminal itself, so only the
	// minimal-terminal rule and overrides apply
	set.WindowTitle = s.decide(domain.FeatureTitle, cfg, env, func() bool { return true })

	var engine ports.PromptEngine
	if set.Prompt {
		engine = s.PromptEngines.Resolve(cfg.EngineOrder(), cfg.PromptFallback(), s.Prober)
	}
	return set, engine
}

// decide applies the per-feature priority chain.
func (s *Service) decide(f domain.Feature, cfg domain.Config, env domain.Environment, backing func() bool) bool {
	if env.Terminal.Minimal() {
		return false
	}
	if env.DisabledByEnv(f) {
		return false
	}
	if toggle := cfg.Features.Toggle(f); toggle != nil && !*toggle {
		return false
	}
	return backing()
}

func resolveShell(override string, env domain.Environment) domain.ShellName {
	switch override {
	case "zsh":
		return domain.ShellZsh
	case "bash":
		return domain.ShellBash
	}
	if env.Shell != domain.ShellUnknown {
		return env.Shell
	}
	return domain.ShellZsh
}

func listingStrategy(cfg domain.Config, features domain.FeatureSet) domain.ListingStrategy {
	if features.EnhancedLister {
		return domain.ListingStrategy{Kind: domain.ListingEnhanced, Tool: cfg.ListingTool()}
	}
	return domain.ListingStrategy{Kind: domain.ListingPlain}
}

func promptInit(engine ports.PromptEngine, features domain.FeatureSet, cfg domain.Config, shell domain.ShellName) domain.PromptInit {
	if !features.Prompt || engine == nil {
		return domain.PromptInit{
			Engine:      "static",
			Fallback:    cfg.PromptFallback(),
			UseFallback: true,
		}
	}
	return engine.InitFor(shell)
}

// prepareCompletion ensures the cache directory exists before the emitted
// script runs compinit, and compiles the previous session's dump when
// stale. Failures degrade: the script is still emitted and the completion
// subsystem reports its own error downstream.
func (s *Service) prepareCompletion(ctx context.Context, plan *domain.ScriptPlan) {
	if plan.Shell != domain.ShellZsh {
		return
	}
	plan.Completion = domain.CompletionPlan{
		CacheDir: s.Cache.Dir(),
		DumpPath: s.Cache.DumpPath(),
	}
	if _, err := s.Cache.EnsureDir(); err != nil {
		s.Logger.Warn("completion cache dir", map[string]interface{}{"error": err.Error()})
		return
	}
	if compiled, err := s.Cache.CompileIfStale(ctx); err != nil {
		s.Logger.Debug("dump compile skipped", map[string]interface{}{"error": err.Error()})
	} else if compiled {
		s.Logger.Debug("completion dump compiled", map[string]interface{}{"dump": s.Cache.DumpPath()})
	}
}

// queuePlugins assembles the FIFO defer queue, dropping plugins the auditor
// flags and the suggestion plugin when the feature is off. The completion
// cache directory is audited alongside the plugins; a finding there is
// surfaced but does not block completion setup.
func (s *Service) queuePlugins(cfg domain.Config, features domain.FeatureSet, plan *domain.ScriptPlan) []domain.AuditFinding {
	if plan.Shell != domain.ShellZsh {
		return nil
	}

	var paths []string
	if shim, ok := cfg.DeferShim(); ok {
		paths = append(paths, shim.Path)
	}
	for _, p := range cfg.OrdinaryPlugins() {
		paths = append(paths, p.Path)
	}
	if dir := s.Cache.Dir(); dir != "" {
		paths = append(paths, dir)
	}

	var findings []domain.AuditFinding
	if s.Auditor != nil {
		findings = s.Auditor.Audit(paths)
	}
	flagged := map[string]bool{}
	for _, f := range findings {
		flagged[f.Path] = true
		s.Logger.Warn("unsafe path reported by audit", map[string]interface{}{
			"path":   f.Path,
			"reason": f.Reason,
		})
	}

	if shim, ok := cfg.DeferShim(); ok && !flagged[shim.Path] {
		plan.DeferShim = &domain.PluginSource{Name: shim.Name, Path: shim.Path}
	}

	var queue domain.DeferQueue
	for _, p := range cfg.OrdinaryPlugins() {
		if flagged[p.Path] {
			continue
		}
		if !features.Autosuggestions && isSuggestionPlugin(p.Name) {
			continue
		}
		queue.Push(domain.PluginSource{Name: p.Name, Path: p.Path})
	}
	plan.Deferred = queue.Drain()
	return findings
}

func hasPlugin(cfg domain.Config, kind string) bool {
	for _, p := range cfg.OrdinaryPlugins() {
		if isKind(p.Name, kind) {
			return true
		}
	}
	return false
}

func isSuggestionPlugin(name string) bool {
	return isKind(name, "autosuggestions")
}

func isKind(name, kind string) bool {
	return strings.Contains(strings.ToLower(name), kind)
}

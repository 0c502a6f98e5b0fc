package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	ShellIntegrator ports.ShellIntegrator
	Prober          ports.ToolProber
	Cache           ports.CompletionCache
	Auditor         ports.PluginAuditor
	Sessions        ports.SessionStore
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded (format %s)", cfg.ConfigFormatVersion)))

	checks = append(checks, s.toolChecks(cfg)...)
	checks = append(checks, s.cacheCheck(ctx))
	checks = append(checks, s.auditCheck(cfg))
	checks = append(checks, s.integrationCheck())
	checks = append(checks, s.sessionCheck())

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) toolChecks(cfg domain.Config) []domain.HealthCheck {
	var checks []domain.HealthCheck

	var found []string
	for _, engine := range cfg.EngineOrder() {
		if s.Prober.Available(engine) {
			found = append(found, engine)
		}
	}
	if len(found) > 0 {
		checks = append(checks, ok("Prompt engine", strings.Join(found, ", ")))
	} else {
		checks = append(checks, warn("Prompt engine", "no engine on PATH; static fallback in use"))
	}

	if s.Prober.Available(cfg.ListingTool()) {
		checks = append(checks, ok("Listing tool", cfg.ListingTool()))
	} else {
		checks = append(checks, warn("Listing tool", fmt.Sprintf("%s not on PATH; plain ls aliases in use", cfg.ListingTool())))
	}

	if s.Prober.Available("zsh") {
		checks = append(checks, ok("zsh", "on PATH"))
	} else {
		checks = append(checks, warn("zsh", "not on PATH; dump compilation unavailable"))
	}
	return checks
}

func (s *Service) cacheCheck(ctx context.Context) domain.HealthCheck {
	if s.Cache == nil {
		return warn("Completion cache", "cache manager not initialized")
	}
	if _, err := s.Cache.EnsureDir(); err != nil {
		return fail("Completion cache", err.Error())
	}
	if compiled, err := s.Cache.CompileIfStale(ctx); err != nil {
		return warn("Completion cache", fmt.Sprintf("dump compile: %v", err))
	} else if compiled {
		return ok("Completion cache", "dump recompiled")
	}
	return ok("Completion cache", s.Cache.Dir())
}

func (s *Service) auditCheck(cfg domain.Config) domain.HealthCheck {
	if s.Auditor == nil {
		return warn("Plugin audit", "auditor not initialized")
	}
	var paths []string
	for _, p := range cfg.Plugins {
		paths = append(paths, p.Path)
	}
	if s.Cache != nil {
		if dir := s.Cache.Dir(); dir != "" {
			paths = append(paths, dir)
		}
	}
	findings := s.Auditor.Audit(paths)
	if len(findings) == 0 {
		return ok("Plugin audit", fmt.Sprintf("%d paths clean", len(paths)))
	}
	var details []string
	for _, f := range findings {
		details = append(details, fmt.Sprintf("%s (%s)", f.Path, f.Reason))
	}
	return warn("Plugin audit", strings.Join(details, "; "))
}

func (s *Service) integrationCheck() domain.HealthCheck {
	if s.ShellIntegrator == nil {
		return warn("Shell integration", "installer not initialized")
	}
	status := s.ShellIntegrator.Status("")
	if status.Error != "" {
		return warn("Shell integration", status.Error)
	}
	if status.LinePresent {
		return ok("Shell integration", fmt.Sprintf("%s ready", status.Shell))
	}
	return warn("Shell integration", "not installed (run: shrc install)")
}

func (s *Service) sessionCheck() domain.HealthCheck {
	if s.Sessions == nil {
		return warn("Session log", "store not initialized")
	}
	stats, err := s.Sessions.Stats()
	if err != nil {
		return warn("Session log", err.Error())
	}
	return ok("Session log", fmt.Sprintf("%d activations recorded", stats.Total))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}

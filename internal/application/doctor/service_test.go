package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/infrastructure/toolprobe"
)

type fixedConfig struct {
	cfg domain.Config
	err error
}

func (f fixedConfig) Load(context.Context) (domain.Config, error) { return f.cfg, f.err }

type stubIntegrator struct {
	status domain.ShellStatus
}

func (s stubIntegrator) Install(string, bool) (domain.ShellInstallResult, error) {
	return domain.ShellInstallResult{}, nil
}
func (s stubIntegrator) Uninstall(string) (domain.ShellInstallResult, error) {
	return domain.ShellInstallResult{}, nil
}
func (s stubIntegrator) Status(string) domain.ShellStatus { return s.status }
func (s stubIntegrator) DetectShell() string              { return "/usr/bin/zsh" }

type stubCache struct {
	dir       string
	ensureErr error
}

func (c stubCache) Dir() string                                 { return c.dir }
func (c stubCache) DumpPath() string                            { return c.dir + "/zcompdump" }
func (c stubCache) EnsureDir() (bool, error)                    { return false, c.ensureErr }
func (c stubCache) CompileIfStale(context.Context) (bool, error) { return false, nil }
func (c stubCache) Clear() error                                { return nil }

type stubAuditor struct {
	findings []domain.AuditFinding
}

func (a stubAuditor) Audit([]string) []domain.AuditFinding { return a.findings }

type captureAuditor struct {
	paths []string
}

func (a *captureAuditor) Audit(paths []string) []domain.AuditFinding {
	a.paths = paths
	return nil
}

type stubSessions struct {
	stats domain.SessionStats
	err   error
}

func (s stubSessions) Save(domain.SessionRecord) error            { return nil }
func (s stubSessions) Recent(int) ([]domain.SessionRecord, error) { return nil, nil }
func (s stubSessions) Stats() (domain.SessionStats, error)        { return s.stats, s.err }
func (s stubSessions) Clear() error                               { return nil }

func prober(available ...string) *toolprobe.Prober {
	set := map[string]bool{}
	for _, a := range available {
		set[a] = true
	}
	return toolprobe.NewWithLookup(func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	})
}

func statusOf(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q missing from report %+v", name, report.Checks)
	return domain.HealthCheck{}
}

// TestService_Run_AllHealthy tests the green path
func TestService_Run_AllHealthy(t *testing.T) {
	svc := &Service{
		ConfigProvider:  fixedConfig{cfg: domain.Config{ConfigFormatVersion: "1"}},
		ShellIntegrator: stubIntegrator{status: domain.ShellStatus{Shell: domain.ShellZsh, LinePresent: true}},
		Prober:          prober("starship", "eza", "zsh"),
		Cache:           stubCache{dir: "/tmp/cache"},
		Auditor:         stubAuditor{},
		Sessions:        stubSessions{stats: domain.SessionStats{Total: 12}},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, name := range []string{"Config file", "Prompt engine", "Listing tool", "zsh", "Completion cache", "Plugin audit", "Shell integration", "Session log"} {
		if check := statusOf(t, report, name); check.Status != domain.HealthOK {
			t.Errorf("%s = %s (%s), want ok", name, check.Status, check.Details)
		}
	}
}

// TestService_Run_DegradedSignals tests warnings for missing tools and
// uninstalled integration
func TestService_Run_DegradedSignals(t *testing.T) {
	svc := &Service{
		ConfigProvider:  fixedConfig{cfg: domain.Config{ConfigFormatVersion: "1"}},
		ShellIntegrator: stubIntegrator{status: domain.ShellStatus{Shell: domain.ShellZsh}},
		Prober:          prober(),
		Cache:           stubCache{dir: "/tmp/cache"},
		Auditor: stubAuditor{findings: []domain.AuditFinding{
			{Path: "/p/loose.zsh", Reason: "group or world writable"},
		}},
		Sessions: stubSessions{},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, name := range []string{"Prompt engine", "Listing tool", "zsh", "Plugin audit", "Shell integration"} {
		if check := statusOf(t, report, name); check.Status != domain.HealthWarn {
			t.Errorf("%s = %s, want warn", name, check.Status)
		}
	}
}

// TestService_Run_AuditIncludesCacheDir tests the completion directory is
// part of the audited path set
func TestService_Run_AuditIncludesCacheDir(t *testing.T) {
	auditor := &captureAuditor{}
	svc := &Service{
		ConfigProvider: fixedConfig{cfg: domain.Config{
			ConfigFormatVersion: "1",
			Plugins:             []domain.PluginSpec{{Name: "auto", Path: "/p/auto.zsh"}},
		}},
		ShellIntegrator: stubIntegrator{},
		Prober:          prober(),
		Cache:           stubCache{dir: "/tmp/cache"},
		Auditor:         auditor,
		Sessions:        stubSessions{},
	}

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, p := range auditor.paths {
		if p == "/tmp/cache" {
			found = true
		}
	}
	if !found {
		t.Errorf("audited paths %v missing the completion cache dir", auditor.paths)
	}
}

// TestService_Run_ConfigFailureIsFatal tests the config check short-circuit
func TestService_Run_ConfigFailureIsFatal(t *testing.T) {
	svc := &Service{
		ConfigProvider: fixedConfig{err: errors.New("yaml: broken")},
		Prober:         prober(),
	}

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from broken config")
	}
	if len(report.Checks) != 1 {
		t.Fatalf("got %d checks, want 1", len(report.Checks))
	}
	if report.Checks[0].Status != domain.HealthError {
		t.Errorf("config check = %s, want error", report.Checks[0].Status)
	}
}

// TestService_Run_CacheFailure tests an uncreatable cache dir surfaces
func TestService_Run_CacheFailure(t *testing.T) {
	svc := &Service{
		ConfigProvider:  fixedConfig{cfg: domain.Config{ConfigFormatVersion: "1"}},
		ShellIntegrator: stubIntegrator{},
		Prober:          prober("zsh"),
		Cache:           stubCache{dir: "/tmp/cache", ensureErr: errors.New("permission denied")},
		Auditor:         stubAuditor{},
		Sessions:        stubSessions{},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if check := statusOf(t, report, "Completion cache"); check.Status != domain.HealthError {
		t.Errorf("cache check = %s, want error", check.Status)
	}
}

package term

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/ports"
)

// disableVars maps SHRC_DISABLE_* environment variables to features. These
// are the earlier-loaded override channel: a pre-hook (or anything sourced
// before shrc runs) can export them to veto a feature for the session.
var disableVars = map[string]domain.Feature{
	"SHRC_DISABLE_PROMPT":          domain.FeaturePrompt,
	"SHRC_DISABLE_AUTOSUGGESTIONS": domain.FeatureAutosuggestions,
	"SHRC_DISABLE_LISTER":          domain.FeatureLister,
	"SHRC_DISABLE_TITLE":           domain.FeatureTitle,
}

// Collector snapshots terminal and identity signals from the process
// environment. Lookup functions are injectable for tests.
type Collector struct {
	getenv func(string) string
	isTTY  func() bool
}

// NewCollector builds a collector reading the real environment. The TTY
// probe targets stderr: under eval "$(shrc init ...)" stdout is always a
// command-substitution pipe, while stderr stays attached to the terminal.
func NewCollector() *Collector {
	return &Collector{
		getenv: os.Getenv,
		isTTY: func() bool {
			return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		},
	}
}

// NewCollectorWith builds a collector with injected lookups.
func NewCollectorWith(getenv func(string) string, isTTY func() bool) *Collector {
	return &Collector{getenv: getenv, isTTY: isTTY}
}

// Collect implements ports.EnvironmentCollector. Called exactly once per
// session; the returned snapshot is immutable.
func (c *Collector) Collect() domain.Environment {
	disabled := map[domain.Feature]bool{}
	for name, feature := range disableVars {
		if truthy(c.getenv(name)) {
			disabled[feature] = true
		}
	}

	host := c.getenv("HOST")
	if host == "" {
		host = c.getenv("HOSTNAME")
	}
	if host == "" {
		if h, err := os.Hostname(); err == nil {
			host = h
		}
	}

	return domain.Environment{
		Terminal: domain.Terminal{
			Term: c.getenv("TERM"),
			TTY:  c.isTTY(),
		},
		Shell:    detectShell(c.getenv("SHELL")),
		User:     c.getenv("USER"),
		Host:     shortHost(host),
		Disabled: disabled,
	}
}

func detectShell(shellEnv string) domain.ShellName {
	switch strings.ToLower(filepath.Base(shellEnv)) {
	case "zsh":
		return domain.ShellZsh
	case "bash":
		return domain.ShellBash
	default:
		return domain.ShellUnknown
	}
}

func shortHost(host string) string {
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

var _ ports.EnvironmentCollector = (*Collector)(nil)

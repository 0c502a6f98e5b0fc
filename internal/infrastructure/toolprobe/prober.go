package toolprobe

import (
	"os/exec"
	"sync"

	"github.com/doeshing/shrc/internal/ports"
)

// Prober resolves executable availability via the search path. Results are
// memoized for the life of the process: a signal is computed once per
// session and never re-evaluated, and nothing persists across sessions.
type Prober struct {
	lookPath func(string) (string, error)

	mu   sync.Mutex
	seen map[string]bool
}

// New builds a Prober backed by exec.LookPath.
func New() *Prober {
	return NewWithLookup(exec.LookPath)
}

// NewWithLookup builds a Prober with an injected lookup, for tests.
func NewWithLookup(lookPath func(string) (string, error)) *Prober {
	return &Prober{lookPath: lookPath, seen: map[string]bool{}}
}

// Available implements ports.ToolProber.
func (p *Prober) Available(name string) bool {
	if name == "" {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if hit, ok := p.seen[name]; ok {
		return hit
	}
	_, err := p.lookPath(name)
	p.seen[name] = err == nil
	return p.seen[name]
}

var _ ports.ToolProber = (*Prober)(nil)

// Package compcache manages the completion subsystem's cache artifacts.
//
// The completion engine itself owns the cache contents and the dump file
// lifecycle; this package only supplies the paths, guarantees the directory
// exists before the completion subsystem initializes, and opportunistically
// compiles the dump when the compiled form is missing or stale.
package compcache

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/pkg/filesystem"
	"github.com/doeshing/shrc/internal/ports"
)

// DefaultDumpName is the completion dump file name inside the cache dir.
const DefaultDumpName = "zcompdump"

// Manager implements ports.CompletionCache over a directory.
type Manager struct {
	dir            string
	dumpName       string
	compileEnabled bool

	// injectable for tests
	mkdirAll func(string, os.FileMode) error
	compile  func(ctx context.Context, dump string) error
}

// NewManager builds a manager from completion settings. An empty cache dir
// resolves to the XDG cache directory; SHRC_CACHE_DIR overrides both.
func NewManager(settings domain.CompletionSettings) *Manager {
	dir := settings.CacheDir
	if custom := os.Getenv("SHRC_CACHE_DIR"); custom != "" {
		dir = custom
	}
	if dir == "" {
		dir = filesystem.CacheDir()
	}
	dumpName := settings.DumpFile
	if dumpName == "" {
		dumpName = DefaultDumpName
	}
	return &Manager{
		dir:            dir,
		dumpName:       dumpName,
		compileEnabled: settings.CompileDump == nil || *settings.CompileDump,
		mkdirAll:       os.MkdirAll,
		compile:        zshCompile,
	}
}

// Dir returns the cache directory path.
func (m *Manager) Dir() string { return m.dir }

// DumpPath returns the completion dump path.
func (m *Manager) DumpPath() string { return filepath.Join(m.dir, m.dumpName) }

// compiledPath is the zcompile output next to the dump.
func (m *Manager) compiledPath() string { return m.DumpPath() + ".zwc" }

// EnsureDir creates the cache directory when absent. Must hold before the
// completion subsystem initializes. Reports whether a creation call was
// issued; an existing directory short-circuits without touching mkdir.
func (m *Manager) EnsureDir() (bool, error) {
	if info, err := os.Stat(m.dir); err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("cache path %s exists and is not a directory", m.dir)
		}
		return false, nil
	}
	if err := m.mkdirAll(m.dir, domain.DirectoryPermissions); err != nil {
		return false, fmt.Errorf("create cache dir: %w", err)
	}
	return true, nil
}

// CompileIfStale compiles the completion dump when the compiled artifact is
// missing or older than the dump. Idempotent: a fresh artifact is a no-op,
// and so is a missing dump. Disabled entirely by the compile_dump knob.
func (m *Manager) CompileIfStale(ctx context.Context) (bool, error) {
	if !m.compileEnabled {
		return false, nil
	}
	dump := m.DumpPath()
	dumpInfo, err := os.Stat(dump)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	compiledInfo, err := os.Stat(m.compiledPath())
	if err == nil && !compiledInfo.ModTime().Before(dumpInfo.ModTime()) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	if err := m.compile(ctx, dump); err != nil {
		return false, fmt.Errorf("compile %s: %w", dump, err)
	}
	return true, nil
}

// Clear removes the cache directory and everything in it.
func (m *Manager) Clear() error {
	return os.RemoveAll(m.dir)
}

// Stats summarizes the cache directory contents.
type Stats struct {
	Dir           string
	Exists        bool
	Entries       int
	TotalBytes    int64
	DumpPresent   bool
	CompiledFresh bool
}

// Stats reports the cache directory state (best-effort).
func (m *Manager) Stats() (Stats, error) {
	stats := Stats{Dir: m.dir}
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, err
	}
	stats.Exists = true
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stats.Entries++
		if info, err := e.Info(); err == nil {
			stats.TotalBytes += info.Size()
		}
	}

	dumpInfo, dumpErr := os.Stat(m.DumpPath())
	stats.DumpPresent = dumpErr == nil
	if compiledInfo, err := os.Stat(m.compiledPath()); err == nil && dumpErr == nil {
		stats.CompiledFresh = !compiledInfo.ModTime().Before(dumpInfo.ModTime())
	}
	return stats, nil
}

// zshCompile invokes zsh to produce the .zwc form of the dump. zcompile is
// a shell builtin; there is no standalone binary to call.
func zshCompile(ctx context.Context, dump string) error {
	cmd := exec.CommandContext(ctx, "zsh", "-fc", fmt.Sprintf("zcompile %q", dump))
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("zsh zcompile: %w (%s)", err, string(out))
	}
	return nil
}

var _ ports.CompletionCache = (*Manager)(nil)

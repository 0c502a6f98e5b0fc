package compcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/shrc/internal/domain"
)

func testManager(t *testing.T, dir string) (*Manager, *int, *int) {
	t.Helper()
	m := NewManager(domain.CompletionSettings{CacheDir: dir})
	mkdirCalls := 0
	compileCalls := 0
	m.mkdirAll = func(path string, perm os.FileMode) error {
		mkdirCalls++
		return os.MkdirAll(path, perm)
	}
	m.compile = func(ctx context.Context, dump string) error {
		compileCalls++
		return os.WriteFile(dump+".zwc", []byte("compiled"), 0o644)
	}
	return m, &mkdirCalls, &compileCalls
}

// TestManager_EnsureDir tests first-run creation and idempotence
func TestManager_EnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	m, mkdirCalls, _ := testManager(t, dir)

	created, err := m.EnsureDir()
	if err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if !created {
		t.Error("first run should create the directory")
	}
	if *mkdirCalls != 1 {
		t.Errorf("mkdir called %d times, want 1", *mkdirCalls)
	}

	created, err = m.EnsureDir()
	if err != nil {
		t.Fatalf("EnsureDir second run: %v", err)
	}
	if created {
		t.Error("second run must not report creation")
	}
	if *mkdirCalls != 1 {
		t.Errorf("mkdir called %d times after second run, want 1 (no redundant call)", *mkdirCalls)
	}
}

// TestManager_EnsureDir_FileCollision tests a non-directory at the cache path
func TestManager_EnsureDir_FileCollision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, _, _ := testManager(t, path)
	if _, err := m.EnsureDir(); err == nil {
		t.Error("expected error when cache path is a regular file")
	}
}

// TestManager_CompileIfStale tests the staleness-gated compile side effect
func TestManager_CompileIfStale(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m, _, compileCalls := testManager(t, dir)
	dump := m.DumpPath()

	// no dump yet: nothing to compile
	compiled, err := m.CompileIfStale(ctx)
	if err != nil {
		t.Fatalf("CompileIfStale: %v", err)
	}
	if compiled || *compileCalls != 0 {
		t.Error("missing dump must be a no-op")
	}

	// dump present, no compiled artifact: compile
	if err := os.WriteFile(dump, []byte("dump"), 0o644); err != nil {
		t.Fatal(err)
	}
	compiled, err = m.CompileIfStale(ctx)
	if err != nil {
		t.Fatalf("CompileIfStale: %v", err)
	}
	if !compiled || *compileCalls != 1 {
		t.Errorf("expected compile on missing artifact, compiled=%v calls=%d", compiled, *compileCalls)
	}

	// fresh artifact: idempotent no-op
	compiled, err = m.CompileIfStale(ctx)
	if err != nil {
		t.Fatalf("CompileIfStale: %v", err)
	}
	if compiled || *compileCalls != 1 {
		t.Errorf("fresh artifact must be a no-op, compiled=%v calls=%d", compiled, *compileCalls)
	}

	// stale artifact: dump newer than .zwc triggers recompile
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(dump, future, future); err != nil {
		t.Fatal(err)
	}
	compiled, err = m.CompileIfStale(ctx)
	if err != nil {
		t.Fatalf("CompileIfStale: %v", err)
	}
	if !compiled || *compileCalls != 2 {
		t.Errorf("stale artifact must recompile, compiled=%v calls=%d", compiled, *compileCalls)
	}
}

// TestManager_CompileIfStale_Disabled tests the compile_dump off switch
func TestManager_CompileIfStale_Disabled(t *testing.T) {
	dir := t.TempDir()
	off := false
	m := NewManager(domain.CompletionSettings{CacheDir: dir, CompileDump: &off})
	compileCalls := 0
	m.compile = func(ctx context.Context, dump string) error {
		compileCalls++
		return nil
	}
	if err := os.WriteFile(m.DumpPath(), []byte("dump"), 0o644); err != nil {
		t.Fatal(err)
	}

	compiled, err := m.CompileIfStale(context.Background())
	if err != nil {
		t.Fatalf("CompileIfStale: %v", err)
	}
	if compiled || compileCalls != 0 {
		t.Errorf("compilation disabled by config must be a no-op, compiled=%v calls=%d", compiled, compileCalls)
	}
}

// TestManager_Stats tests directory summarization
func TestManager_Stats(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	m, _, _ := testManager(t, dir)

	stats, err := m.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Exists {
		t.Error("missing dir should report Exists=false")
	}

	if _, err := m.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(m.DumpPath(), []byte("dump"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := m.CompileIfStale(context.Background()); err != nil {
		t.Fatal(err)
	}

	stats, err = m.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if !stats.Exists || !stats.DumpPresent || !stats.CompiledFresh {
		t.Errorf("stats = %+v, want existing dir with fresh compiled dump", stats)
	}
	if stats.Entries != 2 {
		t.Errorf("entries = %d, want 2", stats.Entries)
	}
}

// TestNewManager_PathResolution tests env override precedence for the dir
func TestNewManager_PathResolution(t *testing.T) {
	t.Setenv("SHRC_CACHE_DIR", "")

	m := NewManager(domain.CompletionSettings{CacheDir: "/tmp/explicit"})
	if m.Dir() != "/tmp/explicit" {
		t.Errorf("dir = %s, want explicit setting", m.Dir())
	}

	t.Setenv("SHRC_CACHE_DIR", "/tmp/env-cache")
	m = NewManager(domain.CompletionSettings{CacheDir: "/tmp/explicit"})
	if m.Dir() != "/tmp/env-cache" {
		t.Errorf("dir = %s, want env override to win", m.Dir())
	}

	m = NewManager(domain.CompletionSettings{DumpFile: "compdump"})
	if got := filepath.Base(m.DumpPath()); got != "compdump" {
		t.Errorf("dump name = %s, want compdump", got)
	}
}

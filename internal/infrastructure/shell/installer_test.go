package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/shrc/internal/domain"
)

func installerEnv(t *testing.T) (*Installer, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/usr/bin/zsh")
	return NewInstaller(nil), home
}

// TestInstaller_InstallCreatesRCFile tests first install on a machine
// without an rc file
func TestInstaller_InstallCreatesRCFile(t *testing.T) {
	installer, home := installerEnv(t)

	result, err := installer.Install("zsh", false)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !result.RCUpdated {
		t.Error("expected rc update on first install")
	}

	contents, err := os.ReadFile(filepath.Join(home, ".zshrc"))
	if err != nil {
		t.Fatalf("read rc: %v", err)
	}
	if !strings.Contains(string(contents), `eval "$(shrc init zsh)"`) {
		t.Errorf("rc missing eval line:\n%s", contents)
	}
}

// TestInstaller_InstallIdempotent tests repeated installs do not duplicate
func TestInstaller_InstallIdempotent(t *testing.T) {
	installer, home := installerEnv(t)

	if _, err := installer.Install("zsh", false); err != nil {
		t.Fatal(err)
	}
	result, err := installer.Install("zsh", false)
	if err != nil {
		t.Fatalf("second Install: %v", err)
	}
	if result.RCUpdated {
		t.Error("second install should be a no-op")
	}

	contents, _ := os.ReadFile(filepath.Join(home, ".zshrc"))
	if n := strings.Count(string(contents), "shrc init zsh"); n != 1 {
		t.Errorf("eval line appears %d times, want 1", n)
	}
}

// TestInstaller_ForceMovesLineToEnd tests --force rewrites the entry
func TestInstaller_ForceMovesLineToEnd(t *testing.T) {
	installer, home := installerEnv(t)
	rc := filepath.Join(home, ".zshrc")
	existing := "eval \"$(shrc init zsh)\"\nexport EDITOR=vim\n"
	if err := os.WriteFile(rc, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := installer.Install("zsh", true)
	if err != nil {
		t.Fatalf("Install force: %v", err)
	}
	if !result.RCUpdated {
		t.Error("force install should rewrite")
	}

	contents, _ := os.ReadFile(rc)
	text := strings.TrimRight(string(contents), "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] != `eval "$(shrc init zsh)"` {
		t.Errorf("eval line not moved to end:\n%s", contents)
	}
	if strings.Count(string(contents), "shrc init zsh") != 1 {
		t.Error("force install duplicated the line")
	}
}

// TestInstaller_Uninstall tests line removal and missing-file tolerance
func TestInstaller_Uninstall(t *testing.T) {
	installer, home := installerEnv(t)

	// no rc file at all: not an error, nothing removed
	result, err := installer.Uninstall("zsh")
	if err != nil {
		t.Fatalf("Uninstall without rc: %v", err)
	}
	if result.RCUpdated {
		t.Error("nothing should be removed from a missing rc")
	}

	if _, err := installer.Install("zsh", false); err != nil {
		t.Fatal(err)
	}
	result, err = installer.Uninstall("zsh")
	if err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if !result.RCUpdated {
		t.Error("expected removal after install")
	}

	contents, _ := os.ReadFile(filepath.Join(home, ".zshrc"))
	if strings.Contains(string(contents), "shrc init") {
		t.Errorf("eval line still present:\n%s", contents)
	}
}

// TestInstaller_Status tests state reporting
func TestInstaller_Status(t *testing.T) {
	installer, _ := installerEnv(t)

	status := installer.Status("zsh")
	if status.LinePresent {
		t.Error("line should not be present before install")
	}

	if _, err := installer.Install("zsh", false); err != nil {
		t.Fatal(err)
	}
	status = installer.Status("zsh")
	if !status.LinePresent {
		t.Error("line should be present after install")
	}
	if status.Shell != domain.ShellZsh {
		t.Errorf("shell = %s, want zsh", status.Shell)
	}
}

// TestInstaller_UnsupportedShell tests the error and status paths
func TestInstaller_UnsupportedShell(t *testing.T) {
	installer, _ := installerEnv(t)

	if _, err := installer.Install("fish", false); err == nil {
		t.Error("expected error for unsupported shell")
	}
	status := installer.Status("fish")
	if status.Error == "" {
		t.Error("expected status error for unsupported shell")
	}
}

// TestNormalizeShell_AutoDetect tests $SHELL fallback
func TestNormalizeShell_AutoDetect(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")
	if got := normalizeShell(""); got != domain.ShellBash {
		t.Errorf("normalizeShell(\"\") = %s, want bash", got)
	}
	if got := normalizeShell("ZSH"); got != domain.ShellZsh {
		t.Errorf("normalizeShell(ZSH) = %s, want zsh", got)
	}
}

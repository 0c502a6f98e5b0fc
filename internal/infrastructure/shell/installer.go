package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/pkg/filesystem"
	"github.com/doeshing/shrc/internal/pkg/logger"
	"github.com/doeshing/shrc/internal/ports"
)

// Installer manages the rc-file integration line.
type Installer struct {
	logger ports.Logger
}

// NewInstaller builds a shell installer. A nil logger is replaced with a
// discard logger.
func NewInstaller(log ports.Logger) *Installer {
	if log == nil {
		log = logger.Nop()
	}
	return &Installer{logger: log}
}

// evalLine is the single line shrc places in the rc file. The whole session
// bootstrap flows through it; nothing else is written to user dotfiles.
func evalLine(shell domain.ShellName) string {
	return fmt.Sprintf(`eval "$(shrc init %s)"`, shell)
}

// Install adds the integration line for the given shell name (auto-detected
// when empty).
func (i *Installer) Install(shell string, force bool) (domain.ShellInstallResult, error) {
	name := normalizeShell(shell)
	rcFile := rcPath(name)
	if rcFile == "" {
		return domain.ShellInstallResult{}, fmt.Errorf("unsupported shell: %s", shell)
	}

	line := evalLine(name)
	updated, err := ensureRCLine(rcFile, line, force)
	if err != nil {
		return domain.ShellInstallResult{}, err
	}
	if updated {
		i.logger.Info("rc file updated", map[string]interface{}{"file": rcFile})
	}

	return domain.ShellInstallResult{
		Shell:     name,
		RCFile:    rcFile,
		EvalLine:  line,
		RCUpdated: updated,
	}, nil
}

// Uninstall removes the integration line from the rc file.
func (i *Installer) Uninstall(shell string) (domain.ShellInstallResult, error) {
	name := normalizeShell(shell)
	rcFile := rcPath(name)
	if rcFile == "" {
		return domain.ShellInstallResult{}, fmt.Errorf("unsupported shell: %s", shell)
	}
	removed, err := removeRCLine(rcFile, evalLine(name))
	if err != nil {
		return domain.ShellInstallResult{}, err
	}
	if removed {
		i.logger.Info("rc line removed", map[string]interface{}{"file": rcFile})
	}
	return domain.ShellInstallResult{
		Shell:     name,
		RCFile:    rcFile,
		EvalLine:  evalLine(name),
		RCUpdated: removed,
	}, nil
}

// Status reports current integration state.
func (i *Installer) Status(shell string) domain.ShellStatus {
	name := normalizeShell(shell)
	rcFile := rcPath(name)
	status := domain.ShellStatus{
		Shell:  name,
		RCFile: rcFile,
	}
	if rcFile == "" {
		status.Error = "unsupported shell"
		return status
	}

	if contents, err := os.ReadFile(rcFile); err == nil {
		status.LinePresent = strings.Contains(string(contents), evalLine(name))
	}
	return status
}

// DetectShell inspects the SHELL env var.
func (i *Installer) DetectShell() string {
	return os.Getenv("SHELL")
}

func normalizeShell(shell string) domain.ShellName {
	if shell == "" {
		shell = filepath.Base(os.Getenv("SHELL"))
	}
	switch strings.ToLower(shell) {
	case "zsh":
		return domain.ShellZsh
	case "bash":
		return domain.ShellBash
	default:
		return domain.ShellUnknown
	}
}

func rcPath(shell domain.ShellName) string {
	home := filesystem.UserHomeDir()
	switch shell {
	case domain.ShellZsh:
		return filepath.Join(home, ".zshrc")
	case domain.ShellBash:
		return filepath.Join(home, ".bashrc")
	default:
		return ""
	}
}

func headerComment() string {
	return "# shrc shell integration\n"
}

func ensureRCLine(path string, line string, force bool) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte(headerComment()+line+"\n"), domain.FilePermissions); err != nil {
			return false, err
		}
		return true, nil
	}
	if strings.Contains(string(contents), line) && !force {
		return false, nil
	}
	lines := strings.Split(string(contents), "\n")
	var filtered []string
	for _, existing := range lines {
		if strings.Contains(existing, line) {
			continue
		}
		filtered = append(filtered, existing)
	}
	filtered = append(filtered, line)
	final := strings.Join(filtered, "\n")
	if !strings.HasSuffix(final, "\n") {
		final += "\n"
	}
	return true, os.WriteFile(path, []byte(final), domain.FilePermissions)
}

func removeRCLine(path string, line string) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	lines := strings.Split(string(contents), "\n")
	var filtered []string
	removed := false
	for _, existing := range lines {
		if strings.Contains(existing, line) {
			removed = true
			continue
		}
		filtered = append(filtered, existing)
	}
	if !removed {
		return false, nil
	}
	final := strings.Join(filtered, "\n")
	if !strings.HasSuffix(final, "\n") {
		final += "\n"
	}
	return true, os.WriteFile(path, []byte(final), domain.FilePermissions)
}

var _ ports.ShellIntegrator = (*Installer)(nil)

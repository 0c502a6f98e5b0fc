package domain

// ShellName enumerates supported shells.
type ShellName string

const (
	ShellUnknown ShellName = "unknown"
	ShellZsh     ShellName = "zsh"
	ShellBash    ShellName = "bash"
)

// ShellInstallResult describes install/uninstall outcomes.
type ShellInstallResult struct {
	Shell     ShellName
	RCFile    string
	EvalLine  string
	RCUpdated bool
}

// ShellStatus captures current integration state.
type ShellStatus struct {
	Shell       ShellName
	RCFile      string
	LinePresent bool
	Error       string
}

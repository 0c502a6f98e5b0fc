// Package security audits plugin files before they are sourced.
//
// Sourcing a plugin executes arbitrary code in the user's shell, so entries
// writable by other users (or owned by someone else) are flagged and
// skipped, mirroring the compaudit rules of zsh's completion system.
package security

import (
	"os"
	"path/filepath"
	"syscall"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/ports"
)

// groupWorldWritable masks the permission bits that make an entry unsafe.
const groupWorldWritable = 0o022

// Auditor implements ports.PluginAuditor with filesystem checks.
type Auditor struct {
	stat func(string) (os.FileInfo, error)
	uid  int
}

// NewAuditor builds an auditor for the current user.
func NewAuditor() *Auditor {
	return &Auditor{stat: os.Stat, uid: os.Getuid()}
}

// NewAuditorWith builds an auditor with injected stat and uid, for tests.
func NewAuditorWith(stat func(string) (os.FileInfo, error), uid int) *Auditor {
	return &Auditor{stat: stat, uid: uid}
}

// Audit checks each path and its parent directory. Missing paths are not
// findings; absence is handled by the activation fallback chain, not here.
func (a *Auditor) Audit(paths []string) []domain.AuditFinding {
	var findings []domain.AuditFinding
	checked := map[string]bool{}

	for _, path := range paths {
		for _, target := range []string{path, filepath.Dir(path)} {
			if checked[target] {
				continue
			}
			checked[target] = true
			if f, ok := a.check(target); ok {
				findings = append(findings, f)
			}
		}
	}
	return findings
}

func (a *Auditor) check(path string) (domain.AuditFinding, bool) {
	info, err := a.stat(path)
	if err != nil {
		return domain.AuditFinding{}, false
	}
	if info.Mode().Perm()&groupWorldWritable != 0 {
		return domain.AuditFinding{Path: path, Reason: "group or world writable"}, true
	}
	if owner, ok := fileOwner(info); ok && owner != a.uid && owner != 0 {
		return domain.AuditFinding{Path: path, Reason: "owned by another user"}, true
	}
	return domain.AuditFinding{}, false
}

// fileOwner extracts the owning uid where the platform exposes it.
func fileOwner(info os.FileInfo) (int, bool) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return int(st.Uid), true
	}
	return 0, false
}

var _ ports.PluginAuditor = (*Auditor)(nil)

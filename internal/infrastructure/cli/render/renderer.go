package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/doeshing/shrc/internal/domain"
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

// RenderReport prints a doctor report, one check per line.
func RenderReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		var mark string
		switch check.Status {
		case domain.HealthOK:
			mark = okMark("ok")
		case domain.HealthWarn:
			mark = warnMark("warn")
		default:
			mark = failMark("fail")
		}
		fmt.Fprintf(out, "%-6s %-18s %s\n", mark, check.Name, check.Details)
	}
}

// RenderInstallResult prints an install/uninstall outcome.
func RenderInstallResult(out io.Writer, verb string, result domain.ShellInstallResult) {
	if result.RCUpdated {
		fmt.Fprintf(out, "%s: %s (%s)\n", verb, result.RCFile, okMark("updated"))
		return
	}
	fmt.Fprintf(out, "%s: %s (no change)\n", verb, result.RCFile)
}

// RenderStatus prints integration state for a shell.
func RenderStatus(out io.Writer, status domain.ShellStatus) {
	if status.Error != "" {
		fmt.Fprintf(out, "%s: %s\n", status.Shell, failMark(status.Error))
		return
	}
	state := warnMark("not installed")
	if status.LinePresent {
		state = okMark("installed")
	}
	fmt.Fprintf(out, "%-5s %s (%s)\n", status.Shell, status.RCFile, state)
}

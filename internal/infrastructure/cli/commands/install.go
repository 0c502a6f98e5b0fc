package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/shrc/internal/app"
	"github.com/doeshing/shrc/internal/infrastructure/cli/render"
)

// NewInstallCommand creates the install command
func NewInstallCommand(container *app.Container) *cobra.Command {
	var shell string
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Add the shrc eval line to your rc file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForShells(cmd, container, shell, func(name string) error {
				result, err := container.ShellIntegrator.Install(name, force)
				if err != nil {
					return err
				}
				render.RenderInstallResult(cmd.OutOrStdout(), "install", result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "", "Shell to install (zsh|bash|all, auto-detected by default)")
	cmd.Flags().BoolVar(&force, "force", false, "Force rewrite of rc entry")
	return cmd
}

// NewUninstallCommand creates the uninstall command
func NewUninstallCommand(container *app.Container) *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the shrc eval line from your rc file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForShells(cmd, container, shell, func(name string) error {
				result, err := container.ShellIntegrator.Uninstall(name)
				if err != nil {
					return err
				}
				render.RenderInstallResult(cmd.OutOrStdout(), "uninstall", result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "", "Shell to uninstall (zsh|bash|all, auto-detected by default)")
	return cmd
}

// NewStatusCommand creates the status command
func NewStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show rc-file integration state",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{"zsh", "bash"} {
				render.RenderStatus(cmd.OutOrStdout(), container.ShellIntegrator.Status(name))
			}
			return nil
		},
	}
}

// runForShells expands the --shell flag ("all" fans out to both shells,
// empty auto-detects) and applies fn per shell.
func runForShells(cmd *cobra.Command, container *app.Container, shellFlag string, fn func(string) error) error {
	if container.ShellIntegrator == nil {
		return fmt.Errorf("shell installer unavailable")
	}

	switch strings.ToLower(shellFlag) {
	case "all":
		for _, name := range []string{"zsh", "bash"} {
			if err := fn(name); err != nil {
				return err
			}
		}
		return nil
	case "":
		detected := filepath.Base(container.ShellIntegrator.DetectShell())
		if detected == "" || detected == "." {
			return fmt.Errorf("could not detect shell; pass --shell")
		}
		return fn(detected)
	default:
		return fn(shellFlag)
	}
}

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/shrc/internal/app"
	"github.com/doeshing/shrc/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "shrc",
		Short: "shrc - interactive shell session bootstrap",
		Long: "shrc resolves per-session features (prompt engine, autosuggestions,\n" +
			"listing aliases, window title) once at startup and emits the shell\n" +
			"script that configures the session. Add to your rc file with:\n" +
			"  shrc install",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(commands.NewInitCommand(container))
	root.AddCommand(commands.NewInstallCommand(container))
	root.AddCommand(commands.NewUninstallCommand(container))
	root.AddCommand(commands.NewStatusCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewCacheCommand(container))
	root.AddCommand(commands.NewSessionsCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

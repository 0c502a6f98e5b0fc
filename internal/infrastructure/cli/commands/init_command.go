package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/shrc/internal/app"
	"github.com/doeshing/shrc/internal/application/activate"
)

// NewInitCommand creates the init command. Its stdout is meant for
// eval "$(shrc init zsh)" in the rc file, so nothing else is printed there.
func NewInitCommand(container *app.Container) *cobra.Command {
	var noLog bool

	cmd := &cobra.Command{
		Use:   "init [zsh|bash]",
		Short: "Emit the session bootstrap script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) == 1 {
				shell = args[0]
			}

			result, err := container.ActivateService.Resolve(activate.Request{
				Context: cmd.Context(),
				Shell:   shell,
				SkipLog: noLog,
			})
			if err != nil {
				return err
			}

			script, err := container.Emitter.Render(result.Plan)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noLog, "no-log", false, "Skip recording this activation in the session log")
	return cmd
}

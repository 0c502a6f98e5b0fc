package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/shrc/internal/app"
	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/infrastructure/cli/render"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, tools, cache and integration health",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			render.RenderReport(cmd.OutOrStdout(), report)
			if err != nil {
				return err
			}
			if report.Overall() == domain.HealthError {
				return fmt.Errorf("one or more checks failed")
			}
			return nil
		},
	}
}

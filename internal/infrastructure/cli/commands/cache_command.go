package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/shrc/internal/app"
)

// NewCacheCommand creates the cache command with subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the completion cache directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory and dump paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dir:  %s\n", container.CacheManager.Dir())
			fmt.Fprintf(out, "dump: %s\n", container.CacheManager.DumpPath())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "compile",
		Short: "Compile the completion dump if it is stale",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := container.CacheManager.EnsureDir(); err != nil {
				return err
			}
			compiled, err := container.CacheManager.CompileIfStale(cmd.Context())
			if err != nil {
				return err
			}
			if compiled {
				fmt.Fprintln(cmd.OutOrStdout(), "Compiled completion dump.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Compiled dump already up to date.")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the cache directory and its contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.CacheManager.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", container.CacheManager.Dir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache directory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := container.CacheManager.Stats()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dir:            %s\n", stats.Dir)
			if !stats.Exists {
				fmt.Fprintln(out, "state:          not created")
				return nil
			}
			fmt.Fprintf(out, "entries:        %d\n", stats.Entries)
			fmt.Fprintf(out, "total size:     %d bytes\n", stats.TotalBytes)
			fmt.Fprintf(out, "dump present:   %t\n", stats.DumpPresent)
			fmt.Fprintf(out, "compiled fresh: %t\n", stats.CompiledFresh)
			return nil
		},
	})

	return cmd
}

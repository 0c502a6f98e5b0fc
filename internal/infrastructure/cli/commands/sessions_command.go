package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/shrc/internal/app"
	"github.com/doeshing/shrc/internal/domain"
)

// NewSessionsCommand creates the sessions command with subcommands
func NewSessionsCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect the session activation log",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent activations",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.SessionStore.Recent(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No sessions recorded yet.")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "%s  %-4s  term=%-16s engine=%-10s %s  %dms\n",
					r.Timestamp.Format(domain.TimestampFormat),
					r.Shell, r.Term, r.PromptEngine, featureSummary(r), r.ResolveTimeMS)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", domain.DefaultSessionListLimit, "Maximum number of sessions to show")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Summarize the activation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := container.SessionStore.Stats()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if stats.Total == 0 {
				fmt.Fprintln(out, "No sessions recorded yet.")
				return nil
			}
			fmt.Fprintf(out, "total sessions:   %d\n", stats.Total)
			fmt.Fprintf(out, "prompt enabled:   %d\n", stats.PromptEnabled)
			fmt.Fprintf(out, "suggest enabled:  %d\n", stats.SuggestEnabled)
			fmt.Fprintf(out, "lister enabled:   %d\n", stats.ListerEnabled)
			fmt.Fprintf(out, "title enabled:    %d\n", stats.TitleEnabled)
			fmt.Fprintf(out, "avg resolve:      %dms\n", stats.AvgResolveTimeMS)
			fmt.Fprintf(out, "first seen:       %s\n", stats.FirstSeen.Format(domain.TimestampFormat))
			fmt.Fprintf(out, "last seen:        %s\n", stats.LastSeen.Format(domain.TimestampFormat))
			for engine, count := range stats.EnginesSeen {
				fmt.Fprintf(out, "engine %-10s %d\n", engine+":", count)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the activation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.SessionStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session log cleared.")
			return nil
		},
	})

	return cmd
}

// featureSummary compacts the per-feature flags into a short tag list.
func featureSummary(r domain.SessionRecord) string {
	tags := ""
	add := func(on bool, tag string) {
		if !on {
			return
		}
		if tags != "" {
			tags += ","
		}
		tags += tag
	}
	add(r.Prompt, "prompt")
	add(r.Autosuggestions, "suggest")
	add(r.EnhancedLister, "lister")
	add(r.WindowTitle, "title")
	if tags == "" {
		return "minimal"
	}
	return tags
}

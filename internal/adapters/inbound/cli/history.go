package cli

import (
	"fmt"

	"github.com/docforge/docforge/internal/adapters/outbound/history"
	"github.com/docforge/docforge/internal/adapters/outbound/tui"
	"github.com/docforge/docforge/internal/domain"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		commit string
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show previous diagram runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := pathArg(args)
			if err != nil {
				return err
			}

			store := history.New()
			var runs []domain.RunEntry
			if commit != "" {
				runs, err = store.ForCommit(absPath, commit)
				runs = lastRuns(runs, limit)
			} else {
				runs, err = store.Recent(absPath, limit)
			}
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "show at most this many recent runs (0 for all)")
	cmd.Flags().StringVar(&commit, "commit", "", "only show runs recorded at commits with this hash prefix")
	return cmd
}

func lastRuns(runs []domain.RunEntry, n int) []domain.RunEntry {
	if n > 0 && len(runs) > n {
		return runs[len(runs)-n:]
	}
	return runs
}

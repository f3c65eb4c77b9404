package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jfmyers9/spotisleep/internal/history"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past timer runs",
	Long: `Show past timer runs recorded in the local history database.

Each entry shows when the timer started, how long it was asked to
wait, and how the run ended:
  paused          - the duration elapsed and playback was paused
  already-stopped - playback had stopped on its own before the pause
  not-playing     - nothing was playing, the timer never started`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of runs to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := history.Open(historyDBPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No timer runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tREQUESTED\tOUTCOME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			run.StartedAt.Local().Format(time.DateTime),
			run.RequestedFor,
			run.Outcome,
		)
	}
	return w.Flush()
}

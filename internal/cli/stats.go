// internal/cli/stats.go
//
// `kelime stats`: the local statistics panel.

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/kelime/internal/render"
	"github.com/robalobadob/kelime/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := stats.Open(cfg.StatsPath())
		if err != nil {
			return fmt.Errorf("open stats: %w", err)
		}
		defer st.Close()
		return printSummary(cmd.Context(), cmd.OutOrStdout(), st)
	},
}

func init() {
	RootCmd.AddCommand(statsCmd)
}

func printSummary(ctx context.Context, out io.Writer, st *stats.Store) error {
	sum, err := st.Summary(ctx, time.Now())
	if err != nil {
		return err
	}
	panel, err := render.Summary(sum)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, panel)
	return nil
}

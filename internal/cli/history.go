// internal/cli/history.go
//
// `kelime history`: the puzzles of the previous days next to the player's
// own result for each date.

package cli

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/kelime/internal/daily"
	"github.com/robalobadob/kelime/internal/stats"
	"github.com/robalobadob/kelime/internal/words"
)

// historyDays matches what the backend returns on /word/previous.
const historyDays = 7

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the previous days' words and your results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var prev []daily.Puzzle
		var err error
		if !offlineFlag {
			if prev, err = apiClient().Previous(ctx); err != nil {
				log.Warn().Err(err).Msg("previous puzzles unavailable, using the local list")
			}
		}
		if offlineFlag || err != nil {
			gen, gerr := localGenerator()
			if gerr != nil {
				return gerr
			}
			prev = gen.Last(time.Now(), historyDays)
		}

		st, err := stats.Open(cfg.StatsPath())
		if err != nil {
			return fmt.Errorf("open stats: %w", err)
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		if len(prev) == 0 {
			fmt.Fprintln(out, "Henüz geçmiş bulmaca yok.")
			return nil
		}
		rows := pterm.TableData{{"Gün", "Tarih", "Kelime", "Sonuç"}}
		for _, p := range prev {
			r, ok, err := st.Lookup(ctx, p.Date)
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				fmt.Sprint(p.Count), daily.DateKey(p.Date), words.Normalize(p.Word), resultCell(r, ok),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, table)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)
}

func resultCell(r stats.Result, ok bool) string {
	switch {
	case !ok:
		return "-"
	case r.Won:
		return fmt.Sprintf("%d/6", r.Guesses)
	}
	return "X/6"
}

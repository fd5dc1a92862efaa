// internal/cli/dict.go
//
// `kelime dict refresh|show`: manage the cached dictionary.

package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/kelime/internal/words"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Inspect or refresh the cached dictionary",
}

var dictRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Download the dictionary now, ignoring its age",
	RunE: func(cmd *cobra.Command, args []string) error {
		if offlineFlag {
			return errors.New("refresh needs the backend; drop --offline")
		}
		n, err := cfg.DictionaryCache().Refresh(cmd.Context(), apiClient())
		if err != nil {
			return fmt.Errorf("refresh dictionary: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d kelime indirildi: %s\n", n, cfg.DictionaryCache().Path)
		return nil
	},
}

var dictShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show where the dictionary would be loaded from",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cache := cfg.DictionaryCache()
		fmt.Fprintf(out, "path:   %s\n", cache.Path)
		if age, ok := cache.Age(time.Now()); ok {
			fmt.Fprintf(out, "age:    %s (stale: %t)\n", age.Round(time.Minute), cache.Stale(time.Now()))
		} else {
			fmt.Fprintln(out, "age:    no cache")
		}

		// Show what a game would use without touching the network.
		d, src, err := (&words.Provider{Cache: cache}).Load(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "source: %s\nwords:  %d\n", src, d.Len())
		return nil
	},
}

func init() {
	dictCmd.AddCommand(dictRefreshCmd, dictShowCmd)
	RootCmd.AddCommand(dictCmd)
}

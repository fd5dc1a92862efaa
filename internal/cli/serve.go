// internal/cli/serve.go
//
// `kelime serve`: run the word and leaderboard backend on PORT with the
// embedded word lists and the SQLite database at DB_PATH.

package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/kelime/internal/db"
	"github.com/robalobadob/kelime/internal/httpserver"
	"github.com/robalobadob/kelime/internal/store"
	"github.com/robalobadob/kelime/internal/words"
)

var portFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the word and leaderboard backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		if portFlag != "" {
			cfg.Server.Port = portFlag
		}
		conn, err := db.Open(cfg.Server.DBPath, db.ServerSchema)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer conn.Close()

		dict, err := words.Embedded()
		if err != nil {
			return fmt.Errorf("load word lists: %w", err)
		}
		answers, err := words.Answers()
		if err != nil {
			return fmt.Errorf("load word lists: %w", err)
		}

		srv := httpserver.New(cfg.Server, conn, store.NewMemoryStore(), dict, answers)
		log.Info().Str("port", cfg.Server.Port).Str("db", cfg.Server.DBPath).
			Int("words", dict.Len()).Int("answers", len(answers)).Msg("starting kelime backend")
		return srv.Start(cmd.Context(), ":"+cfg.Server.Port)
	},
}

func init() {
	serveCmd.Flags().StringVar(&portFlag, "port", "", "Listen port (default: $PORT or 5175)")
	RootCmd.AddCommand(serveCmd)
}

// internal/cli/root.go
//
// Root command and shared setup for the kelime commands.
//   - Persistent flags override configuration from .env and the environment.
//   - Logs go to stderr so they never mix with the board.
//   - Backend and definition clients, token file helpers.

package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/kelime/internal/api"
	"github.com/robalobadob/kelime/internal/config"
	"github.com/robalobadob/kelime/internal/meaning"
)

var (
	cfg config.Config

	apiFlag      string
	langFlag     string
	dataDirFlag  string
	tdkFlag      string
	logLevelFlag string
	offlineFlag  bool
)

// RootCmd is the top-level command. Without a subcommand it plays today's puzzle.
var RootCmd = &cobra.Command{
	Use:               "kelime",
	Short:             "Günlük kelime tahmin oyunu",
	Long:              "Terminalde günün 5 harfli kelimesini 6 tahminde bulmaya çalışın.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runPlay,
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVar(&apiFlag, "api", "", "Backend URL (default: $KELIME_API_URL or the public backend)")
	pf.StringVar(&langFlag, "lang", "", "Puzzle language (default: $KELIME_LANG or tr)")
	pf.StringVar(&dataDirFlag, "data-dir", "", "Data directory (default: $KELIME_DATA_DIR or ~/.local/share/kelime)")
	pf.StringVar(&tdkFlag, "tdk-url", "", "Dictionary lookup URL (default: $KELIME_TDK_URL or sozluk.gov.tr)")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (default: $LOG_LEVEL or warn)")
	pf.BoolVar(&offlineFlag, "offline", false, "Do not contact the backend; use the built-in word list")
	addPlayFlags(RootCmd)
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// setup loads configuration, applies flag overrides and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Load()
	if apiFlag != "" {
		cfg.APIURL = apiFlag
	}
	if langFlag != "" {
		cfg.Lang = langFlag
	}
	if dataDirFlag != "" {
		cfg.SetDataDir(dataDirFlag)
	}
	if tdkFlag != "" {
		cfg.TDKURL = tdkFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	def := zerolog.WarnLevel
	if cmd.Name() == "serve" {
		def = zerolog.InfoLevel
	}
	setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, def)
	return nil
}

// setupLogging sends human-readable logs to w so they stay off the board.
func setupLogging(w io.Writer, level string, def zerolog.Level) {
	lvl := def
	if level != "" {
		if l, err := zerolog.ParseLevel(level); err == nil {
			lvl = l
		}
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

// apiClient returns a backend client carrying the stored token, if any.
func apiClient() *api.Client {
	c := api.New(cfg.APIURL, cfg.Lang, cfg.HTTPTimeout)
	c.Token = loadToken()
	return c
}

func meaningClient() *meaning.Client {
	return meaning.New(cfg.TDKURL, cfg.HTTPTimeout)
}

// loadToken returns the stored leaderboard token or "".
func loadToken() string {
	b, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func saveToken(tok string) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(cfg.TokenPath(), []byte(tok+"\n"), 0o600)
}

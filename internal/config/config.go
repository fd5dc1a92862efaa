// internal/config/config.go
//
// Runtime configuration.
//
// Values come from, in increasing priority:
//   1. built-in defaults,
//   2. a .env file in the working directory (godotenv; never overrides
//      variables already set in the environment),
//   3. environment variables,
//   4. command-line flags (applied by the cli package).
//
// Environment variables:
//   KELIME_API_URL       backend base URL
//   KELIME_LANG          puzzle language (default "tr")
//   KELIME_DATA_DIR      where the dictionary cache, stats and token live
//   KELIME_DICT_MAX_AGE  dictionary refresh interval (Go duration, default 168h)
//   KELIME_TDK_URL       definition lookup base URL
//   KELIME_HTTP_TIMEOUT  timeout for outbound requests (default 10s)
//   LOG_LEVEL            zerolog level
//   PORT, DB_PATH, JWT_SECRET, JWT_EXPIRES_DAYS, DAILY_SALT, DAILY_EPOCH,
//   CLIENT_ORIGIN        backend settings for `kelime serve`

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kelime/internal/api"
	"github.com/robalobadob/kelime/internal/daily"
	"github.com/robalobadob/kelime/internal/meaning"
	"github.com/robalobadob/kelime/internal/words"
)

// Config holds client and server settings.
type Config struct {
	APIURL      string
	Lang        string
	DataDir     string
	DictMaxAge  time.Duration
	TDKURL      string
	HTTPTimeout time.Duration
	LogLevel    string

	Server Server
}

// Server holds the settings of `kelime serve`.
type Server struct {
	Port        string
	DBPath      string
	JWTSecret   string
	JWTExpiry   time.Duration
	DailySalt   string
	DailyEpoch  time.Time
	CORSOrigins string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("ignoring unreadable .env")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	dataDir := getEnv("KELIME_DATA_DIR", defaultDataDir())
	return Config{
		APIURL:      getEnv("KELIME_API_URL", api.DefaultBaseURL),
		Lang:        getEnv("KELIME_LANG", "tr"),
		DataDir:     dataDir,
		DictMaxAge:  envDuration("KELIME_DICT_MAX_AGE", words.DefaultMaxAge),
		TDKURL:      getEnv("KELIME_TDK_URL", meaning.DefaultBaseURL),
		HTTPTimeout: envDuration("KELIME_HTTP_TIMEOUT", 10*time.Second),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		Server: Server{
			Port:        getEnv("PORT", "5175"),
			DBPath:      getEnv("DB_PATH", filepath.Join(dataDir, "server.db")),
			JWTSecret:   getEnv("JWT_SECRET", "dev_secret_change_me"),
			JWTExpiry:   time.Duration(envInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
			DailySalt:   getEnv("DAILY_SALT", "local_dev_salt"),
			DailyEpoch:  envDate("DAILY_EPOCH", daily.DefaultEpoch),
			CORSOrigins: getEnv("CLIENT_ORIGIN", "*"),
		},
	}
}

// SetDataDir moves the data directory. The server database follows unless
// DB_PATH pins it.
func (c *Config) SetDataDir(dir string) {
	c.DataDir = dir
	if os.Getenv("DB_PATH") == "" {
		c.Server.DBPath = filepath.Join(dir, "server.db")
	}
}

// DictionaryCache is the dictionary cache location.
func (c Config) DictionaryCache() *words.Cache {
	return words.NewCache(c.DataDir, c.DictMaxAge)
}

// StatsPath is the local statistics database.
func (c Config) StatsPath() string { return filepath.Join(c.DataDir, "stats.db") }

// TokenPath is where the leaderboard token is stored.
func (c Config) TokenPath() string { return filepath.Join(c.DataDir, "token") }

// defaultDataDir follows the XDG base directory layout:
// $XDG_DATA_HOME/kelime, else ~/.local/share/kelime.
func defaultDataDir() string {
	if x := os.Getenv("XDG_DATA_HOME"); x != "" {
		return filepath.Join(x, "kelime")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "kelime")
	}
	return ".kelime"
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a duration, using default")
	}
	return def
}

func envDate(k string, def time.Time) time.Time {
	if v := os.Getenv(k); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a YYYY-MM-DD date, using default")
	}
	return def
}

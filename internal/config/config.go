// internal/config/config.go
//
// Runtime configuration from the environment.
//
// Load() first reads a `.env` file when present (development), then parses
// the variables below into Config. Unset variables take their defaults.
//
//   PORT                 HTTP port (5175)
//   LOG_LEVEL            zerolog level (info)
//   LOG_PRETTY           human-readable console logs (false)
//   SOLVER_TREE_FILE     decision tree (.json/.yaml); embedded tree when empty
//   WORDS_ANSWERS_FILE   answer list for trials; embedded list when empty
//   SOLVER_MAX_ROUNDS    guesses allowed per puzzle (6)
//   JWT_SECRET           session token signing key
//   SESSION_TTL          session lifetime (24h)
//   REDIS_ADDR           Redis session store; in-memory store when empty
//   REDIS_PASSWORD, REDIS_DB
//   DB_PATH              SQLite file for trial history; disabled when empty
//   CLIENT_ORIGIN        CORS origin (http://localhost:5173)

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DevSecret is the fallback signing key; never use it in production.
const DevSecret = "dev_secret_change_me"

// Config holds every setting the server and CLI read from the environment.
type Config struct {
	Port      string `env:"PORT" envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	TreeFile    string `env:"SOLVER_TREE_FILE"`
	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	MaxRounds   int    `env:"SOLVER_MAX_ROUNDS" envDefault:"6"`

	SessionSecret string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	DBPath       string `env:"DB_PATH"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Load reads `.env` (if any) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment without touching `.env`.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.MaxRounds <= 0 {
		return Config{}, fmt.Errorf("parse env: SOLVER_MAX_ROUNDS must be positive, got %d", c.MaxRounds)
	}
	return c, nil
}

// SetupLogging configures the global zerolog logger: level from LogLevel,
// JSON to stderr by default, console output when LogPretty is set.
func SetupLogging(c Config) {
	SetupLoggingTo(os.Stderr, c)
}

// SetupLoggingTo is SetupLogging with an explicit writer.
func SetupLoggingTo(w io.Writer, c Config) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if c.LogPretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	if err != nil {
		log.Warn().Str("level", c.LogLevel).Msg("unknown log level, using info")
	}
}

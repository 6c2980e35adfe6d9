package main

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/db"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	config.SetupLogging(cfg)

	t, err := assets.ResolveTree(cfg.TreeFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.TreeFile).Msg("failed to load decision tree")
	}
	if err := tree.Validate(t, cfg.MaxRounds); err != nil {
		log.Fatal().Err(err).Msg("decision tree is invalid")
	}
	if cfg.SessionSecret == config.DevSecret {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	sessions := newStore(cfg)

	var trials *sql.DB
	if cfg.DBPath != "" {
		trials, err = db.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		defer trials.Close()
	}

	srv := httpserver.New(httpserver.Options{
		Tree:         t,
		Store:        sessions,
		DB:           trials,
		Secret:       cfg.SessionSecret,
		SessionTTL:   cfg.SessionTTL,
		ClientOrigin: cfg.ClientOrigin,
	})
	log.Info().
		Str("port", cfg.Port).
		Str("tree", tree.Fingerprint(t)).
		Bool("trials", trials != nil).
		Msg("starting wordle-solver")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// newStore picks Redis when REDIS_ADDR is set, memory otherwise.
func newStore(cfg config.Config) store.Store {
	if cfg.RedisAddr == "" {
		log.Info().Msg("using in-memory session store")
		return store.NewMemoryStore(cfg.SessionTTL)
	}
	rs := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, store.WithTTL(cfg.SessionTTL))
	if err := rs.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("using redis session store")
	return rs
}

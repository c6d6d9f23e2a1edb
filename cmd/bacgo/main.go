package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bacgo/adapters/csvfile"
	"bacgo/cli"
	"bacgo/config"
	"bacgo/game"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a JSON config file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	catalog, err := cfg.NumberParams()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid difficulty catalog")
	}

	if err := os.MkdirAll(cfg.RankingsDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.RankingsDir).Msg("cannot create rankings directory")
	}

	repo := csvfile.New(cfg.RankingsDir)
	svc := game.New(repo, game.WithCatalog(catalog), game.WithLogger(log.Logger))

	ui := cli.New(svc, os.Stdin, os.Stdout, log.Logger)
	if err := ui.Run(); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

package main

import (
	"errors"
	"flag"
	"os"

	"conquest/config"
	"conquest/experiments"
	"conquest/logger"
	"conquest/odds"
	"conquest/store"

	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("config", os.Getenv("CONQUEST_CONFIG"), "YAML config file")
	games := flag.Int("games", -1, "Number of games, overrides the config when set")
	oddsOut := flag.String("dump-odds", "", "Write the combat odds table to this CSV file and exit")
	oddsRows := flag.Int("odds-rows", 50, "Defender counts written by -dump-odds")
	report := flag.Bool("report", false, "Summarise the experiment saved in the configured database and exit")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		logger.Init("info")
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *games >= 0 {
		cfg.Experiment.Games = *games
	}
	logger.Init(cfg.LogLevel)

	if *oddsOut != "" {
		if err := dumpOdds(cfg, *oddsOut, *oddsRows); err != nil {
			log.Fatal().Err(err).Msg("failed to write odds table")
		}
		log.Info().Str("path", *oddsOut).Int("rows", *oddsRows).Msg("odds table written")
		return
	}

	if *report {
		if err := logReport(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to report experiment")
		}
		return
	}

	summary, err := experiments.Run(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	log.Info().
		Str("dir", summary.Dir).
		Int("games", summary.Games).
		Int("planner_wins", summary.Wins[experiments.PlannerID]).
		Msg("experiment written")
}

func dumpOdds(cfg config.Config, path string, rows int) error {
	table, err := cfg.Table()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := odds.Write(f, table, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func logReport(cfg config.Config) error {
	if cfg.Experiment.Database == "" {
		return errors.New("no database configured")
	}
	db, err := store.New(cfg.Experiment.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := experiments.LoadReport(db, cfg.Experiment.Name)
	if err != nil {
		return err
	}
	log.Info().
		Str("experiment", r.Experiment).
		Int("games", r.Games).
		Int("planner_wins", r.PlannerWins).
		Int("planner_turns", r.PlannerTurns).
		Int("timed_out", r.TimedOut).
		Float64("mean_depth", r.MeanDepth).
		Msg("experiment report")
	return nil
}

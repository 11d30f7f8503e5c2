// Package config loads the tunables of the planner and the experiment runner from
// a YAML file, with CONQUEST_* environment variables taking precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"conquest/game"
	"conquest/meta"
	"conquest/odds"
	"conquest/searcher"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Planner    searcher.Config  `yaml:"planner"`
	Budget     time.Duration    `yaml:"budget"`
	Odds       OddsConfig       `yaml:"odds"`
	Experiment ExperimentConfig `yaml:"experiment"`
	LogLevel   string           `yaml:"log_level"`
}

type OddsConfig struct {
	Confidence float64 `yaml:"confidence"`
	Table      string  `yaml:"table"` // Optional CSV of "defenders,attackers" rows
}

type ExperimentConfig struct {
	Name      string `yaml:"name"`
	Games     int    `yaml:"games"`
	Players   int    `yaml:"players"`
	Troops    int    `yaml:"troops"` // Starting troops per player
	MaxRounds int    `yaml:"max_rounds"`
	Seed      uint64 `yaml:"seed"`
	OutputDir string `yaml:"output_dir"`
	Database  string `yaml:"database"` // SQLite file, empty to skip persistence
	Map       string `yaml:"map"`      // YAML map file, empty for the classic map
}

func Default() Config {
	return Config{
		Planner: searcher.DefaultConfig(),
		Budget:  meta.BUDGET,
		Odds:    OddsConfig{Confidence: meta.CONFIDENCE},
		Experiment: ExperimentConfig{
			Name:      "planner_vs_random",
			Games:     meta.GAMES,
			Players:   meta.PLAYERS,
			Troops:    meta.TROOPS,
			MaxRounds: meta.MAX_ROUNDS,
			Seed:      1,
			OutputDir: "experiments",
		},
		LogLevel: "info",
	}
}

// Load reads the file at path over the defaults, then applies the environment.
// An empty path uses the defaults alone.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	texts := map[string]*string{
		"CONQUEST_LOG_LEVEL":  &c.LogLevel,
		"CONQUEST_ODDS_TABLE": &c.Odds.Table,
		"CONQUEST_OUTPUT_DIR": &c.Experiment.OutputDir,
		"CONQUEST_DATABASE":   &c.Experiment.Database,
		"CONQUEST_MAP":        &c.Experiment.Map,
	}
	for key, field := range texts {
		if value, ok := lookup(key); ok {
			*field = value
		}
	}

	ints := map[string]*int{
		"CONQUEST_MAX_DEPTH":  &c.Planner.MaxDepth,
		"CONQUEST_GAMES":      &c.Experiment.Games,
		"CONQUEST_PLAYERS":    &c.Experiment.Players,
		"CONQUEST_MAX_ROUNDS": &c.Experiment.MaxRounds,
	}
	for key, field := range ints {
		if value, ok := lookup(key); ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*field = n
		}
	}

	if value, ok := lookup("CONQUEST_BUDGET"); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid CONQUEST_BUDGET: %w", err)
		}
		c.Budget = d
	}
	if value, ok := lookup("CONQUEST_CONFIDENCE"); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid CONQUEST_CONFIDENCE: %w", err)
		}
		c.Odds.Confidence = f
	}
	if value, ok := lookup("CONQUEST_SEED"); ok {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CONQUEST_SEED: %w", err)
		}
		c.Experiment.Seed = seed
	}
	return nil
}

// Validate rejects settings the planner or the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Budget < 0:
		return fmt.Errorf("budget must not be negative, got %s", c.Budget)
	case c.Planner.PruneRatio <= 0:
		return fmt.Errorf("prune ratio must be positive, got %v", c.Planner.PruneRatio)
	case c.Planner.CostWeight < 0:
		return fmt.Errorf("cost weight must not be negative, got %v", c.Planner.CostWeight)
	case c.Planner.Weights.TransitMultiplier < 1:
		return fmt.Errorf("transit multiplier must be at least 1, got %v", c.Planner.Weights.TransitMultiplier)
	case c.Planner.Weights.MinWeight <= 0:
		return fmt.Errorf("min weight must be positive, got %v", c.Planner.Weights.MinWeight)
	case c.Odds.Confidence <= 0 || c.Odds.Confidence >= 1:
		return fmt.Errorf("confidence must be between 0 and 1, got %v", c.Odds.Confidence)
	case c.Experiment.Players < 2:
		return fmt.Errorf("need at least two players, got %d", c.Experiment.Players)
	case c.Experiment.Games < 0:
		return fmt.Errorf("games must not be negative, got %d", c.Experiment.Games)
	}
	return nil
}

// Table builds the combat odds table, reading the CSV when one is configured.
func (c Config) Table() (odds.Table, error) {
	dice := odds.NewDiceTable(game.NewStandardRules(), c.Odds.Confidence)
	if c.Odds.Table == "" {
		return dice, nil
	}
	f, err := os.Open(c.Odds.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to open odds table: %w", err)
	}
	defer f.Close()
	table, err := odds.LoadCSV(f, dice)
	if err != nil {
		return nil, fmt.Errorf("failed to load odds table %s: %w", c.Odds.Table, err)
	}
	return table, nil
}

// Map builds the configured map.
func (c Config) Map() (*game.Map, error) {
	if c.Experiment.Map == "" {
		return game.CreateClassicMap(), nil
	}
	data, err := os.ReadFile(c.Experiment.Map)
	if err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	var spec game.MapSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse map %s: %w", c.Experiment.Map, err)
	}
	return game.BuildMap(spec)
}

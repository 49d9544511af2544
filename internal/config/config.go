package config

import (
	"errors"
	"os"
	"time"

	"cardtable-server/internal/util"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the card table server
type Config struct {
	loaded          bool
	StartingBalance int   `yaml:"startingBalance" envconfig:"starting_balance"`
	BetPresets      []int `yaml:"betPresets" envconfig:"bet_presets"`
	MinBet          int   `yaml:"minBet" envconfig:"min_bet"`
	Blackjack       struct {
		MaxHands    int `yaml:"maxHands" envconfig:"max_hands"`
		ReshuffleAt int `yaml:"reshuffleAt" envconfig:"reshuffle_at"`
	} `yaml:"blackjack"`
	Poker struct {
		AISeats      int     `yaml:"aiSeats" envconfig:"ai_seats"`
		AIFoldChance float64 `yaml:"aiFoldChance" envconfig:"ai_fold_chance"`
	} `yaml:"poker"`
	Roulette struct {
		Variant      string        `yaml:"variant"`
		SpinDuration time.Duration `yaml:"spinDuration" envconfig:"spin_duration"`
	} `yaml:"roulette"`
	RNG struct {
		// Seed makes sessions reproducible when non-zero
		// Each session is seeded with Seed plus the number of sessions created before it
		Seed   int64 `yaml:"seed"`
		Crypto bool  `yaml:"crypto"`
	} `yaml:"rng"`
	JWT struct {
		Secret string `yaml:"secret"`
		Issuer string `yaml:"issuer"`
	} `yaml:"jwt"`
	SessionTTL time.Duration `yaml:"sessionTTL" envconfig:"session_ttl"`
	Log        struct {
		Level             string `yaml:"level"`
		Format            string `yaml:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	cfg := Config{
		StartingBalance: 1000,
		BetPresets:      []int{10, 50, 100},
		MinBet:          1,
		SessionTTL:      time.Hour,
	}

	cfg.Blackjack.MaxHands = 4
	cfg.Blackjack.ReshuffleAt = 15
	cfg.Poker.AISeats = 4
	cfg.Poker.AIFoldChance = 0.3
	cfg.Roulette.Variant = "american"
	cfg.Roulette.SpinDuration = 3 * time.Second
	cfg.RNG.Crypto = true
	cfg.JWT.Issuer = "cardtable"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"

	return cfg
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The config file is optional, values missing from it keep their defaults
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("CARDTABLE_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("cardtable", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

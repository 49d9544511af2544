package gamefactory

import (
	"cardtable-server/internal/config"
	"cardtable-server/internal/rng"
	"cardtable-server/pkg/playable"
	"cardtable-server/pkg/roulette"
	"github.com/sirupsen/logrus"
)

type rouletteFactory struct{}

func (r rouletteFactory) CreateGame(logger logrus.FieldLogger, gen rng.Generator, cfg config.Config, additionalData playable.AdditionalData) (playable.Playable, error) {
	game, err := roulette.NewGame(logger, gen, rouletteOptions(cfg, additionalData))
	if err != nil {
		return nil, err
	}

	return game, nil
}

// rouletteOptions applies the config, then lets the request pick the wheel
func rouletteOptions(cfg config.Config, additionalData playable.AdditionalData) roulette.Options {
	opts := roulette.DefaultOptions()
	opts.StartingBalance = cfg.StartingBalance
	opts.BetPresets = cfg.BetPresets
	opts.MinBet = cfg.MinBet
	opts.SpinDuration = cfg.Roulette.SpinDuration
	if cfg.Roulette.Variant != "" {
		opts.Variant = roulette.Variant(cfg.Roulette.Variant)
	}

	if variant, _ := additionalData.GetString("variant"); variant != "" {
		opts.Variant = roulette.Variant(variant)
	}

	return opts
}

package gamefactory

import (
	"cardtable-server/internal/config"
	"cardtable-server/internal/rng"
	"cardtable-server/pkg/playable"
	"cardtable-server/pkg/poker/holdem"
	"github.com/sirupsen/logrus"
)

type texasHoldEmFactory struct{}

func (t texasHoldEmFactory) CreateGame(logger logrus.FieldLogger, gen rng.Generator, cfg config.Config, additionalData playable.AdditionalData) (playable.Playable, error) {
	game, err := holdem.NewGame(logger, gen, texasHoldEmOptions(cfg, additionalData))
	if err != nil {
		return nil, err
	}

	return game, nil
}

func texasHoldEmOptions(cfg config.Config, additionalData playable.AdditionalData) holdem.Options {
	opts := holdem.DefaultOptions()
	opts.StartingBalance = cfg.StartingBalance
	opts.BetPresets = cfg.BetPresets
	opts.MinBet = cfg.MinBet
	opts.AISeats = cfg.Poker.AISeats
	opts.AIFoldChance = cfg.Poker.AIFoldChance

	if seats, ok := additionalData.GetInt("aiSeats"); ok {
		opts.AISeats = seats
	}

	return opts
}

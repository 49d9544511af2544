package gamefactory

import (
	"cardtable-server/internal/config"
	"cardtable-server/internal/rng"
	"cardtable-server/pkg/blackjack"
	"cardtable-server/pkg/playable"
	"github.com/sirupsen/logrus"
)

type blackjackFactory struct{}

func (b blackjackFactory) CreateGame(logger logrus.FieldLogger, gen rng.Generator, cfg config.Config, additionalData playable.AdditionalData) (playable.Playable, error) {
	game, err := blackjack.NewGame(logger, gen, blackjackOptions(cfg))
	if err != nil {
		return nil, err
	}

	return game, nil
}

func blackjackOptions(cfg config.Config) blackjack.Options {
	opts := blackjack.DefaultOptions()
	opts.StartingBalance = cfg.StartingBalance
	opts.BetPresets = cfg.BetPresets
	opts.MinBet = cfg.MinBet
	opts.MaxHands = cfg.Blackjack.MaxHands
	opts.ReshuffleAt = cfg.Blackjack.ReshuffleAt

	return opts
}

package gamefactory

import (
	"fmt"
	"sort"

	"cardtable-server/internal/config"
	"cardtable-server/internal/rng"
	"cardtable-server/pkg/playable"
	"github.com/sirupsen/logrus"
)

var factories = map[string]GameFactory{
	"blackjack":     blackjackFactory{},
	"poker":         texasHoldEmFactory{},
	"roulette":      rouletteFactory{},
	"texas-hold-em": texasHoldEmFactory{},
}

// GameFactory is a factory for creating games that implement the Playable interface
type GameFactory interface {
	CreateGame(logger logrus.FieldLogger, gen rng.Generator, cfg config.Config, additionalData playable.AdditionalData) (playable.Playable, error)
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no factory with name: %s", name)
	}

	return factory, nil
}

// Names returns the name of every game that can be created
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

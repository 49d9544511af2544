package util

import (
	"fmt"

	"cardtable-server/internal/rng"
)

var adjectives = []string{
	"Lucky", "Golden", "Velvet", "Midnight", "Silver", "Royal", "Crimson", "Emerald", "Neon", "Smoky",
	"Grand", "High", "Quiet", "Rolling", "Spinning", "Wild", "Jolly", "Prime", "Double", "Hidden",
}

var places = []string{
	"Table", "Lounge", "Parlor", "Room", "Pit", "Salon", "Den", "Club", "Hall", "Corner",
	"Felt", "Wheel", "Shoe", "Rail", "Booth",
}

// GetRandomName returns a random session name by combining an adjective with a place
func GetRandomName(gen rng.Generator) string {
	return fmt.Sprintf("%s %s", adjectives[gen.Intn(len(adjectives))], places[gen.Intn(len(places))])
}

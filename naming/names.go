// Package naming generates human-friendly identifiers. Uniqueness is the
// only contract callers rely on; readability is presentation sugar.
package naming

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var adjectives = []string{
	"swift", "brave", "mighty", "golden", "silver", "crimson", "azure", "emerald",
	"fierce", "noble", "royal", "epic", "legendary", "cosmic", "stellar", "radiant",
	"thunder", "lightning", "storm", "frost", "flame", "shadow", "mystic", "ancient",
	"iron", "steel", "diamond", "crystal", "blazing", "soaring", "rising", "eternal",
	"wild", "savage", "primal", "vicious", "cunning", "clever", "wise", "bold",
	"daring", "fearless", "valiant", "heroic", "glorious", "triumphant", "victorious",
}

var nouns = []string{
	"dragon", "phoenix", "griffin", "titan", "warrior", "champion", "gladiator", "knight",
	"samurai", "ninja", "ronin", "sentinel", "guardian", "defender", "crusader", "paladin",
	"ranger", "hunter", "scout", "vanguard", "legion", "battalion", "brigade", "regiment",
	"falcon", "eagle", "hawk", "raven", "wolf", "bear", "lion", "tiger", "panther", "cobra",
	"viper", "scorpion", "spider", "mantis", "shark", "kraken", "leviathan", "behemoth",
	"colossus", "juggernaut", "tempest", "cyclone", "hurricane", "typhoon", "blizzard",
}

var descriptors = []string{
	"clash", "duel", "battle", "showdown", "bout", "match", "contest",
	"encounter", "skirmish", "brawl", "rumble", "fight", "conflict", "struggle",
}

// TournamentName returns a friendly name like "crimson-phoenix-clash".
func TournamentName() string {
	return fmt.Sprintf("%s-%s-%s",
		adjectives[rand.Intn(len(adjectives))],
		nouns[rand.Intn(len(nouns))],
		descriptors[rand.Intn(len(descriptors))],
	)
}

// PublicID derives a URL-safe public identifier from a display name, with a
// short random suffix guaranteeing uniqueness across equal names.
func PublicID(name string) string {
	return fmt.Sprintf("%s-%s", slug.Make(name), ShortID(""))
}

// ShortID returns an 8-hex-char random id, optionally prefixed.
func ShortID(prefix string) string {
	short := uuid.New().String()[:8]
	if prefix == "" {
		return short
	}
	return prefix + short
}

package naming

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTournamentName_Shape(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+-[a-z]+-[a-z]+$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, TournamentName())
	}
}

func TestPublicID_SlugsAndSuffixes(t *testing.T) {
	id := PublicID("Crimson Phoenix Clash!")
	assert.Regexp(t, `^crimson-phoenix-clash-[0-9a-f]{8}$`, id)
}

func TestPublicID_UniqueForSameName(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := PublicID("summer cup")
		assert.False(t, seen[id], "duplicate public id %s", id)
		seen[id] = true
	}
}

func TestShortID_Prefix(t *testing.T) {
	assert.Regexp(t, `^t_[0-9a-f]{8}$`, ShortID("t_"))
	assert.Regexp(t, `^[0-9a-f]{8}$`, ShortID(""))
}

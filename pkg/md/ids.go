package md

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

// maxID is the inclusive upper bound of generated identifiers; ids are
// always printed as eight zero-padded digits.
const maxID = 99999999

// IDGenerator produces short pseudo-random identifiers for generated
// elements. Collisions are possible and tolerated.
type IDGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewIDGenerator returns a generator drawing from rnd. A nil rnd uses the
// process-wide random source.
func NewIDGenerator(rnd *rand.Rand) *IDGenerator {
	return &IDGenerator{rnd: rnd}
}

func (g *IDGenerator) intN(n int) int {
	if g == nil || g.rnd == nil {
		return rand.IntN(n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.IntN(n)
}

// Number returns a bare eight digit identifier such as "00421337".
func (g *IDGenerator) Number() string {
	return fmt.Sprintf("%08d", g.intN(maxID+1))
}

// Generate returns prefix + "_id" + Number(), e.g. "par_id00421337".
// An empty prefix yields the bare number.
func (g *IDGenerator) Generate(prefix string) string {
	if prefix == "" {
		return g.Number()
	}
	return prefix + "_id" + g.Number()
}

// NewApplicationToken returns five random lowercase letters used as the
// namespace segment of tree topic ids. A nil rnd uses the process-wide source.
func NewApplicationToken(rnd *rand.Rand) string {
	var sb strings.Builder
	for range 5 {
		var n int
		if rnd == nil {
			n = rand.IntN(26)
		} else {
			n = rnd.IntN(26)
		}
		sb.WriteByte(byte('a' + n))
	}
	return sb.String()
}

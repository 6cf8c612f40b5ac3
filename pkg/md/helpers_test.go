package md

import (
	"math/rand/v2"
	"regexp"
)

var (
	prefixedIDPattern = regexp.MustCompile(`_id\d{8}`)
	bareIDPattern     = regexp.MustCompile(`id="\d{8}"`)
)

// normalizeIDs replaces generated ids so output can be compared exactly.
func normalizeIDs(s string) string {
	s = prefixedIDPattern.ReplaceAllString(s, "_idX")
	return bareIDPattern.ReplaceAllString(s, `id="N"`)
}

func seededIDs(seed uint64) *IDGenerator {
	return NewIDGenerator(rand.New(rand.NewPCG(seed, seed)))
}

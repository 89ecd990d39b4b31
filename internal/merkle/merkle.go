package merkle

import (
	"github.com/yourusername/ledgerbook/internal/crypto"
)

// EmptyRoot is the commitment for an empty record list.
const EmptyRoot = ""

// Root reduces an ordered list of canonical record strings to a single
// digest. Adjacent elements are combined left to right; if a level has an
// odd count, the last element is paired with itself. The surviving element
// is hashed once more, so a single record commits to its plain digest and a
// pair commits to the digest of their combined digest.
func Root(records []string) string {
	if len(records) == 0 {
		return EmptyRoot
	}

	level := make([]string, len(records))
	copy(level, records)

	for len(level) > 1 {
		level = reduce(level)
	}

	return crypto.HashHex(level[0])
}

// reduce combines one level pairwise into the next.
func reduce(level []string) []string {
	next := make([]string, 0, (len(level)+1)/2)
	for i := 0; i+1 < len(level); i += 2 {
		next = append(next, crypto.HashPairHex(level[i], level[i+1]))
	}
	if len(level)%2 == 1 {
		last := level[len(level)-1]
		next = append(next, crypto.HashPairHex(last, last))
	}
	return next
}

// Levels returns every level of the reduction, starting with the input
// records and ending with the single element that Root hashes into the
// final commitment.
func Levels(records []string) [][]string {
	if len(records) == 0 {
		return nil
	}

	current := make([]string, len(records))
	copy(current, records)
	levels := [][]string{current}

	for len(current) > 1 {
		current = reduce(current)
		levels = append(levels, current)
	}

	return levels
}

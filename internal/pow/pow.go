package pow

import (
	"strings"

	"github.com/yourusername/ledgerbook/internal/block"
	"github.com/yourusername/ledgerbook/pkg/types"
)

// DefaultZeros is the canonical difficulty: the hash must start with four
// '0' hex characters.
const DefaultZeros = 4

// Target is the difficulty policy a sealed hash must satisfy. It is an
// explicit value handed to the sealer, never a literal inside the search
// loop, so tests can use cheap targets.
type Target struct {
	zeros  int
	prefix string
}

// NewTarget creates a target requiring the given number of leading '0' hex
// characters.
func NewTarget(zeros int) Target {
	if zeros < 0 {
		zeros = 0
	}
	return Target{
		zeros:  zeros,
		prefix: strings.Repeat("0", zeros),
	}
}

// DefaultTarget returns the canonical difficulty target.
func DefaultTarget() Target {
	return NewTarget(DefaultZeros)
}

// Zeros returns the number of leading zeros the target requires.
func (t Target) Zeros() int {
	return t.zeros
}

// Meets reports whether hash satisfies the target.
func (t Target) Meets(hash string) bool {
	return strings.HasPrefix(hash, t.prefix)
}

// Seal searches nonce values until the block's hash meets the target and
// returns the sealed hash. The search continues from the current nonce, so
// re-sealing an already-sealed block returns immediately. The search is
// unbounded; the target bounds its expected cost.
func Seal(b *types.Block, target Target) string {
	for !target.Meets(b.Header.Hash) {
		b.Header.Nonce++
		b.Header.Hash = block.Recompute(b)
	}
	return b.Header.Hash
}

// Package pattern provides the synthetic access-pattern generators that
// drive the simulation harness.
//
// Every generator draws document IDs from the fixed universe [MinKey,
// MaxKey] = [1, 100], matching the corpus numbering. Sequences are lazy and
// restartable: the same seeded source yields the same keys.
package pattern

import (
	"fmt"
	"iter"
	"math"
	"math/rand/v2"
)

// Key universe shared by all generators.
const (
	MinKey       = 1
	MaxKey       = 100
	UniverseSize = MaxKey - MinKey + 1
)

// Generator produces a lazy sequence of document IDs following a named
// distribution.
type Generator interface {
	// Name identifies the pattern in simulation summaries.
	Name() string

	// Keys returns a lazy sequence of n document IDs drawn from rng.
	Keys(rng *rand.Rand, n int) iter.Seq[int]
}

// Default returns the generators the harness runs, in their fixed order.
func Default() []Generator {
	return []Generator{
		Uniform(),
		Poisson(DefaultLambda),
		HotRange(),
	}
}

// Uniform returns a generator drawing each key independently and uniformly
// from the universe.
func Uniform() Generator { return uniform{} }

type uniform struct{}

func (uniform) Name() string { return "uniform" }

func (uniform) Keys(rng *rand.Rand, n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for range n {
			if !yield(MinKey + rng.IntN(UniverseSize)) {
				return
			}
		}
	}
}

// DefaultLambda is the default rate of the Poisson generator.
const DefaultLambda = 30.0

// Poisson returns a generator whose keys follow a Poisson distribution
// with the given rate, mapped into the universe. Accesses cluster around
// lambda instead of spreading independently. The rate must be positive.
func Poisson(lambda float64) Generator {
	return poisson{lambda: lambda}
}

type poisson struct {
	lambda float64
}

func (p poisson) Name() string { return fmt.Sprintf("poisson(%g)", p.lambda) }

func (p poisson) Keys(rng *rand.Rand, n int) iter.Seq[int] {
	limit := math.Exp(-p.lambda)
	return func(yield func(int) bool) {
		for range n {
			// Knuth's inversion-by-product: multiply uniform draws until
			// the running product drops below e^-lambda; the iteration
			// count is Poisson-distributed.
			k := 0
			product := 1.0
			for product > limit {
				k++
				product *= rng.Float64()
			}
			if !yield((k-1)%UniverseSize + MinKey) {
				return
			}
		}
	}
}

// Hot-range parameters: an 11-key favored sub-range drawn with probability
// 0.43, modeling an 80/20-style skew.
const (
	HotLow         = 30
	HotHigh        = 40
	HotProbability = 0.43
)

// HotRange returns a generator that favors keys HotLow..HotHigh with
// probability HotProbability and otherwise draws uniformly from the rest
// of the universe.
func HotRange() Generator { return hotRange{} }

type hotRange struct{}

func (hotRange) Name() string { return fmt.Sprintf("hotrange(%d-%d)", HotLow, HotHigh) }

func (hotRange) Keys(rng *rand.Rand, n int) iter.Seq[int] {
	const hotCount = HotHigh - HotLow + 1
	return func(yield func(int) bool) {
		for range n {
			var key int
			if rng.Float64() < HotProbability {
				key = HotLow + rng.IntN(hotCount)
			} else {
				// Draw an index over the cold keys and skip the hot gap.
				key = MinKey + rng.IntN(UniverseSize-hotCount)
				if key >= HotLow {
					key += hotCount
				}
			}
			if !yield(key) {
				return
			}
		}
	}
}

// Package solver drives the outer construct/search/perturb loop: build an
// initial solution, run RVND to a local optimum, accept or roll back a
// perturbed restart, repeat until the time budget is spent.
//
// Concurrency: every type here is driven from a single goroutine. The one
// concurrent phase in the whole engine is construct.ParallelInsertion,
// which runs before the solver ever sees the resulting Store.
package solver

import "math/rand"

// defaultRNGSeed is the fixed seed used when a caller's configured seed is
// zero, keeping "I forgot to set a seed" reproducible rather than
// time-based.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic RNG: seed 0 maps to defaultRNGSeed,
// any other value is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.New(rand.NewSource(s))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed via a SplitMix64-style avalanche finalizer, so independent RNG
// streams derived from one base RNG don't correlate.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// deriveRNG creates an independent deterministic RNG stream from a base RNG
// and a stream identifier, consuming one value from base to decorrelate
// successive derivations.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	parent := base.Int63()
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// shuffleIntsInPlace performs an in-place Fisher-Yates shuffle of a using rng.
func shuffleIntsInPlace(a []int, rng *rand.Rand) {
	n := len(a)
	if n <= 1 {
		return
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// permRange returns a fresh permutation of 0..n-1.
func permRange(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	shuffleIntsInPlace(p, rng)
	return p
}

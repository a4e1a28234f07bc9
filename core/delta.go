package core

import "math/rand"

// Delta is a tie-breaking minimum tracker: it holds the best (lowest) value
// seen so far, and when a new candidate ties the current best, it accepts
// the replacement with probability 1/counter so that every candidate in a
// run of ties is equally likely to be the one retained (reservoir
// sampling). This is what gives the search its diversification — without
// it, ties would always resolve to whichever candidate was evaluated first.
//
// Delta carries no RNG of its own; every Update call takes one explicitly,
// so the whole search tree is driven by a single, explicitly threaded
// *rand.Rand (see solver/rng.go) rather than a package-level generator.
type Delta[T Ordered] struct {
	Value   T
	counter int
}

// Ordered constrains Delta to comparable, orderable numeric types.
type Ordered interface {
	~int | ~int32 | ~int64 | ~float64
}

// NewDelta returns a Delta with no candidate accepted yet.
func NewDelta[T Ordered]() Delta[T] {
	return Delta[T]{counter: -1}
}

// zeroed reports whether this Delta has never accepted a value.
func (d *Delta[T]) zeroed() bool { return d.counter == -1 }

// Update offers a new candidate value. It returns true when the candidate
// was accepted (either because it strictly improves on the current best, or
// because it won the random tie-break), in which case Value now holds it.
func (d *Delta[T]) Update(newValue T, rng *rand.Rand) bool {
	if d.zeroed() || newValue < d.Value {
		d.Value = newValue
		d.counter = 1
		return true
	}

	if newValue == d.Value {
		d.counter++
		return rng.Intn(d.counter) == 0
	}

	return false
}

// UpdateDelta merges another Delta's candidate pool into this one, as when
// combining per-route-pair bests into a single global best. The other
// Delta's counter is treated as the number of ties it already represents.
func (d *Delta[T]) UpdateDelta(other Delta[T], rng *rand.Rand) bool {
	if other.zeroed() {
		return false
	}

	if d.zeroed() || other.Value < d.Value {
		d.Value = other.Value
		d.counter = other.counter
		return true
	}

	if other.Value == d.Value {
		d.counter += other.counter
		return rng.Intn(d.counter) < other.counter
	}

	return false
}

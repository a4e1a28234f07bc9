package core

import "math"

// Insertion is a candidate position for inserting a customer: the delta in
// route cost it would add, and the predecessor/successor pair it would be
// spliced between.
type Insertion struct {
	Delta       Delta[int]
	Predecessor NodeID
	Successor   NodeID
}

// BestInsertion keeps the best 3 distinct insertion candidates seen for one
// customer on one route, ordered best-first. Keeping more than the single
// best lets SwapStar-family operators exclude a specific node (the one
// being displaced) from consideration without recomputing the whole scan.
type BestInsertion struct {
	slots [3]Insertion
}

// Reset clears all slots back to "no candidate seen".
func (b *BestInsertion) Reset() {
	for i := range b.slots {
		b.slots[i] = Insertion{Delta: Delta[int]{Value: math.MaxInt, counter: -1}}
	}
}

// Add offers a new candidate insertion, inserting it into the ordered slot
// list if it beats (or randomly ties) an existing entry, shifting worse
// entries down and dropping the previous worst.
func (b *BestInsertion) Add(delta int, predecessor, successor NodeID, rng randIntn) {
	for i := range b.slots {
		switch {
		case b.slots[i].Delta.Value == math.MaxInt:
			b.slots[i] = Insertion{Delta: Delta[int]{Value: delta, counter: 1}, Predecessor: predecessor, Successor: successor}
			return
		case delta < b.slots[i].Delta.Value:
			b.shiftDown(i)
			b.slots[i] = Insertion{Delta: Delta[int]{Value: delta, counter: 1}, Predecessor: predecessor, Successor: successor}
			return
		case delta == b.slots[i].Delta.Value && b.slots[i].Delta.counter != -1:
			b.slots[i].Delta.counter++
			if rng.Intn(b.slots[i].Delta.counter) == 0 {
				counter := b.slots[i].Delta.counter
				b.shiftDown(i)
				b.slots[i] = Insertion{Delta: Delta[int]{Value: delta, counter: counter}, Predecessor: predecessor, Successor: successor}
				return
			}
		}
	}
}

// shiftDown moves slots[i:len-1] into slots[i+1:], dropping the final entry.
func (b *BestInsertion) shiftDown(i int) {
	for j := len(b.slots) - 1; j > i; j-- {
		b.slots[j] = b.slots[j-1]
	}
}

// FindBest returns the single best insertion, and whether any has been
// recorded at all.
func (b *BestInsertion) FindBest() (Insertion, bool) {
	if b.slots[0].Delta.Value == math.MaxInt {
		return Insertion{}, false
	}
	return b.slots[0], true
}

// FindBestWithoutNode returns the best insertion whose predecessor and
// successor both differ from node, or false if none of the tracked slots
// qualify. Used when excluding the node being displaced from its own
// re-insertion candidates.
func (b *BestInsertion) FindBestWithoutNode(node NodeID) (Insertion, bool) {
	for _, ins := range b.slots {
		if ins.Delta.counter > 0 && ins.Predecessor != node && ins.Successor != node {
			return ins, true
		}
	}
	return Insertion{}, false
}

// randIntn is the minimal RNG surface BestInsertion.Add needs, satisfied by
// *rand.Rand.
type randIntn interface {
	Intn(n int) int
}

// CalcInsertionDelta returns the cost of inserting node (already linked
// nowhere) between predecessor and successor, replacing their direct edge.
func CalcInsertionDelta(p *Problem, store *Store, node, predecessor, successor NodeID) int {
	nc := store.Customer(node)
	return p.Dist(nc, store.Customer(predecessor)) +
		p.Dist(nc, store.Customer(successor)) -
		p.Dist(store.Customer(predecessor), store.Customer(successor))
}

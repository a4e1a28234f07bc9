package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/core"
)

func smallProblem() *core.Problem {
	return &core.Problem{
		NumCustomers: 4,
		Capacity:     10,
		Demands:      []int{0, 3, 4, 2},
		DistanceMatrix: [][]int{
			{0, 2, 4, 6},
			{2, 0, 3, 5},
			{4, 3, 0, 1},
			{6, 5, 1, 0},
		},
	}
}

func TestStoreInsertAndRemoveRoundTrip(t *testing.T) {
	s := core.NewStore()
	a := s.Insert(1, 3, 0, 0)
	b := s.Insert(2, 4, a, 0)
	s.Link(0, a)
	s.Link(b, 0)

	require.Equal(t, core.NodeID(0), s.Predecessor(a))
	require.Equal(t, b, s.Successor(a))
	require.Equal(t, a, s.Predecessor(b))
	require.Equal(t, core.NodeID(0), s.Successor(b))
	require.ElementsMatch(t, []core.NodeID{a, b}, s.NodeIndices())

	s.Remove(a)
	require.Equal(t, core.NodeID(0), s.Predecessor(b))
	require.ElementsMatch(t, []core.NodeID{b}, s.NodeIndices())
}

func TestStoreFreeSlotReuse(t *testing.T) {
	s := core.NewStore()
	a := s.Insert(1, 1, 0, 0)
	s.Link(0, a)
	s.Link(a, 0)
	maxBefore := s.MaxNodeIndex()

	s.Remove(a)
	c := s.Insert(2, 2, 0, 0)
	s.Link(0, c)
	s.Link(c, 0)

	require.Equal(t, maxBefore, s.MaxNodeIndex(), "reused slot must not grow the pool")
	require.Equal(t, a, c, "freed slot should be the next one allocated")
}

func TestStoreCalcObjectiveSingleRoute(t *testing.T) {
	p := smallProblem()
	s := core.NewStore()
	n1 := s.Insert(1, 3, 0, 0)
	n2 := s.Insert(2, 4, n1, 0)
	n3 := s.Insert(3, 2, n2, 0)
	s.Link(0, n1)
	s.Link(n1, n2)
	s.Link(n2, n3)
	s.Link(n3, 0)

	want := p.Dist(0, 1) + p.Dist(1, 2) + p.Dist(2, 3) + p.Dist(3, 0)
	require.Equal(t, want, s.CalcObjective(p))
}

func TestStoreReversedLinkReversesSegment(t *testing.T) {
	s := core.NewStore()
	n1 := s.Insert(1, 1, 0, 0)
	n2 := s.Insert(2, 1, n1, 0)
	n3 := s.Insert(3, 1, n2, 0)
	s.Link(0, n1)
	s.Link(n1, n2)
	s.Link(n2, n3)
	s.Link(n3, 0)

	// Reverse the segment [n1..n3]: left=n1, right=n3 (walking predecessors
	// from n3 back to n1 covers the whole segment).
	s.ReversedLink(n1, n3, 0, 0)

	require.Equal(t, n3, s.Successor(0))
	require.Equal(t, core.Customer(3), s.Customer(n3))
	require.Equal(t, n2, s.Successor(n3))
	require.Equal(t, n1, s.Successor(n2))
	require.Equal(t, core.NodeID(0), s.Successor(n1))
}

func TestStoreStringFormat(t *testing.T) {
	s := core.NewStore()
	n1 := s.Insert(1, 4, 0, 0)
	s.Link(0, n1)
	s.Link(n1, 0)

	require.Equal(t, "Route 1: 0 - 1 (4) - 0\n", s.String())
}

func TestStoreMarshalJSON(t *testing.T) {
	s := core.NewStore()
	n1 := s.Insert(1, 4, 0, 0)
	s.Link(0, n1)
	s.Link(n1, 0)

	b, err := s.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `[[{"customer":0,"quantity":0},{"customer":1,"quantity":4},{"customer":0,"quantity":0}]]`, string(b))
}

func TestRouteContextCalcAndUpdate(t *testing.T) {
	s := core.NewStore()
	n1 := s.Insert(1, 3, 0, 0)
	n2 := s.Insert(2, 4, n1, 0)
	s.Link(0, n1)
	s.Link(n1, n2)
	s.Link(n2, 0)

	rc := core.NewRouteContext()
	rc.CalcRouteContext(s)

	require.Equal(t, 1, rc.NumRoutes())
	require.Equal(t, n1, rc.Head(0))
	require.Equal(t, n2, rc.Tail(0))
	require.Equal(t, 7, rc.Load(0))
	require.Equal(t, 3, rc.PreLoad(n1))
	require.Equal(t, 7, rc.PreLoad(n2))

	// Splice a new node between n1 and n2 and re-run an incremental update
	// rather than a full recalculation.
	n3 := s.Insert(3, 2, n1, n2)
	s.Link(n1, n3)
	s.Link(n3, n2)
	rc.UpdateRouteContext(s, 0, n1)

	require.Equal(t, n2, rc.Tail(0))
	require.Equal(t, 9, rc.Load(0))
	require.Equal(t, 5, rc.PreLoad(n3))
	require.Equal(t, 9, rc.PreLoad(n2))
}

func TestDeltaAcceptsStrictImprovement(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := core.NewDelta[int]()

	require.True(t, d.Update(10, rng))
	require.True(t, d.Update(5, rng))
	require.False(t, d.Update(8, rng))
	require.Equal(t, 5, d.Value)
}

func TestDeltaTieBreakFairness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const trials = 20000
	counts := make([]int, 4)

	for trial := 0; trial < trials; trial++ {
		d := core.NewDelta[int]()
		winner := -1
		for i := 0; i < 4; i++ {
			if d.Update(1, rng) {
				winner = i
			}
		}
		counts[winner]++
	}

	for _, c := range counts {
		frac := float64(c) / float64(trials)
		require.InDelta(t, 0.25, frac, 0.02, "reservoir sampling should be approximately uniform")
	}
}

func TestRouteHeadGuardRoundTrip(t *testing.T) {
	s := core.NewStore()
	n1 := s.Insert(1, 1, 0, 0)
	n2 := s.Insert(2, 1, n1, 0)
	s.Link(0, n1)
	s.Link(n1, n2)
	s.Link(n2, 0)

	rc := core.NewRouteContext()
	rc.CalcRouteContext(s)

	func() {
		guard := core.NewRouteHeadGuard(s, rc, 0)
		defer guard.Close()
		// Remove the head and relink the depot scratch successor to n2.
		s.Link(0, n2)
	}()

	require.Equal(t, n2, rc.Head(0))
}

package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/core"
)

func TestBestInsertionKeepsThreeLowestOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var bi core.BestInsertion
	bi.Reset()

	bi.Add(10, 1, 2, rng)
	bi.Add(4, 3, 4, rng)
	bi.Add(7, 5, 6, rng)
	bi.Add(2, 7, 8, rng)

	best, ok := bi.FindBest()
	require.True(t, ok)
	require.Equal(t, 2, best.Delta.Value)
	require.Equal(t, core.NodeID(7), best.Predecessor)
}

func TestBestInsertionFindBestWithoutNode(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var bi core.BestInsertion
	bi.Reset()

	bi.Add(1, 10, 11, rng)
	bi.Add(2, 12, 13, rng)
	bi.Add(3, 14, 15, rng)

	excluded, ok := bi.FindBestWithoutNode(10)
	require.True(t, ok)
	require.Equal(t, 2, excluded.Delta.Value)
}

func TestBestInsertionEmptyHasNoBest(t *testing.T) {
	var bi core.BestInsertion
	bi.Reset()
	_, ok := bi.FindBest()
	require.False(t, ok)
}

type stubMove struct{ id int }

func TestInterRouteCacheAddRemoveMoveSlotReuse(t *testing.T) {
	s := core.NewStore()
	rc := core.NewRouteContext()
	rc.SetNumRoutes(2)
	rc.AddRoute(1, 1, 0)
	rc.AddRoute(2, 2, 0)

	c := core.NewInterRouteCache[stubMove]()
	c.Reset(s, rc)

	entry := c.Get(0, 1)
	require.False(t, entry.TryReuse(), "freshly reset entry is invalidated once, then valid")
	require.True(t, entry.TryReuse())

	c.RemoveRoute(1)
	rc.SetNumRoutes(1)
	c.AddRoute(1)

	reused := c.Get(0, 1)
	require.False(t, reused.TryReuse(), "re-added route must invalidate its pairings again")
}

func TestStarCacheInvalidatesOnlyChangedRoutes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := smallProblem()
	s := core.NewStore()
	n1 := s.Insert(1, 3, 0, 0)
	s.Link(0, n1)
	s.Link(n1, 0)
	n2 := s.Insert(2, 4, 0, 0)
	s.Link(0, n2)
	s.Link(n2, 0)

	rc := core.NewRouteContext()
	rc.CalcRouteContext(s)

	sc := core.NewStarCache()
	sc.Reset(s, rc)
	sc.Preprocess(p, s, rc, 0, rng)
	sc.Preprocess(p, s, rc, 1, rng)
	sc.Save(s, rc)

	// Route 1 is untouched; route 0 gets a new node spliced into it.
	n3 := s.Insert(3, 2, n1, 0)
	s.Link(n1, n3)
	s.Link(n3, 0)
	rc.UpdateRouteContext(s, 0, n1)

	sc.Reset(s, rc)
	sc.Preprocess(p, s, rc, 0, rng)
	best, ok := sc.Get(0, 1).FindBest()
	require.True(t, ok)
	_ = best

	// Route 1 was not preprocessed again; its cached table survived Reset.
	_, ok = sc.Get(1, 1).FindBest()
	require.True(t, ok)
}

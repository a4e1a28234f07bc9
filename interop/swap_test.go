package interop_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/interop"
)

func TestSwap11ExchangesSingleCustomers(t *testing.T) {
	p := twoRouteProblem()
	store, context := buildRoutes([][]core.Customer{{3, 1}, {4, 2}})

	cacheMap := core.NewCacheMap()
	rng := rand.New(rand.NewSource(1))
	before := store.CalcObjective(p)

	touched := interop.Swap11.Apply(p, store, context, cacheMap, rng)
	if len(touched) > 0 {
		require.Less(t, store.CalcObjective(p), before)
	}
}

func TestSwap10RelocatesSingleCustomer(t *testing.T) {
	p := twoRouteProblem()
	store, context := buildRoutes([][]core.Customer{{1, 2}, {3, 4}})

	cacheMap := core.NewCacheMap()
	rng := rand.New(rand.NewSource(1))
	before := store.CalcObjective(p)

	touched := interop.Swap10.Apply(p, store, context, cacheMap, rng)
	if len(touched) > 0 {
		require.Less(t, store.CalcObjective(p), before)
	}
}

func TestSwap22ExchangesSegments(t *testing.T) {
	p := twoRouteProblem()
	store, context := buildRoutes([][]core.Customer{{1, 2}, {3, 4}})

	cacheMap := core.NewCacheMap()
	rng := rand.New(rand.NewSource(1))
	before := store.CalcObjective(p)

	touched := interop.Swap22.Apply(p, store, context, cacheMap, rng)
	if len(touched) > 0 {
		require.LessOrEqual(t, store.CalcObjective(p), before)
	}
}

func TestSwap20And21DoNotPanicOnSmallRoutes(t *testing.T) {
	p := twoRouteProblem()
	cacheMap := core.NewCacheMap()
	rng := rand.New(rand.NewSource(1))

	store, context := buildRoutes([][]core.Customer{{1, 2}, {3, 4}})
	require.NotPanics(t, func() { interop.Swap20.Apply(p, store, context, cacheMap, rng) })

	store, context = buildRoutes([][]core.Customer{{1, 2}, {3, 4}})
	cacheMap = core.NewCacheMap()
	require.NotPanics(t, func() { interop.Swap21.Apply(p, store, context, cacheMap, rng) })
}

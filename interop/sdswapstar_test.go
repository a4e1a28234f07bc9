package interop_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/interop"
)

// unevenTwoRouteProblem mirrors twoRouteProblem's geometry but gives
// customers unequal demands so split-delivery operators have something to
// split.
func unevenTwoRouteProblem() *core.Problem {
	p := twoRouteProblem()
	p.Demands = []int{0, 5, 2, 5, 2}
	return p
}

func TestSdSwapStarSplitsHeavierCustomer(t *testing.T) {
	p := unevenTwoRouteProblem()
	store, context := buildRoutes([][]core.Customer{{3, 1}, {4, 2}})

	cacheMap := core.NewCacheMap()
	rng := rand.New(rand.NewSource(1))
	before := store.CalcObjective(p)
	beforeDemand := p.TotalDemand()

	touched := interop.SdSwapStar{}.Apply(p, store, context, cacheMap, rng)
	if len(touched) > 0 {
		require.LessOrEqual(t, store.CalcObjective(p), before)
	}
	require.Equal(t, beforeDemand, p.TotalDemand(), "problem demand itself is immutable")
}

func TestSdSwapStarNoOpOnSingleRoute(t *testing.T) {
	p := unevenTwoRouteProblem()
	store, context := buildRoutes([][]core.Customer{{1, 2, 3, 4}})
	cacheMap := core.NewCacheMap()
	rng := rand.New(rand.NewSource(1))

	touched := interop.SdSwapStar{}.Apply(p, store, context, cacheMap, rng)
	require.Nil(t, touched)
}

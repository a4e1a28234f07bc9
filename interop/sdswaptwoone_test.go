package interop_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/interop"
)

func TestSdSwapTwoOneSplitsSegmentEndpoint(t *testing.T) {
	p := unevenTwoRouteProblem()
	store, context := buildRoutes([][]core.Customer{{1, 2}, {3, 4}})

	cacheMap := core.NewCacheMap()
	rng := rand.New(rand.NewSource(1))
	before := store.CalcObjective(p)

	touched := interop.SdSwapTwoOne{}.Apply(p, store, context, cacheMap, rng)
	if len(touched) > 0 {
		require.LessOrEqual(t, store.CalcObjective(p), before)
	}
}

func TestSdSwapTwoOneNoOpWhenRoutesTooShort(t *testing.T) {
	p := unevenTwoRouteProblem()
	// Neither route has two consecutive customers to form a segment.
	store, context := buildRoutes([][]core.Customer{{1}, {2}, {3}, {4}})
	cacheMap := core.NewCacheMap()
	rng := rand.New(rand.NewSource(1))

	touched := interop.SdSwapTwoOne{}.Apply(p, store, context, cacheMap, rng)
	require.Nil(t, touched)
}

// Package interop implements local-search operators that move customers
// between routes: Relocate, Cross, the Swap⟨x,y⟩ segment-exchange family,
// SwapStar, and the split-delivery variants SdSwapStar/SdSwapOneOne/
// SdSwapTwoOne. Every operator shares the same shape: scan candidate route
// pairs (using cached results where still valid), apply the single best
// move found across all pairs, and report which routes changed.
package interop

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
)

// Operator is the uniform shape every inter-route operator implements. It
// returns the external route indices that were modified; nil/empty means no
// improving move was found.
type Operator interface {
	Apply(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, rng *rand.Rand) []int
}

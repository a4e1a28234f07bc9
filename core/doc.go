// Package core holds the mutable solution representation shared by every
// search operator: the doubly-linked node pool (Store), the per-route
// aggregate state that rides alongside it (RouteContext), the tie-breaking
// minimum tracker used throughout delta evaluation (Delta), and the cache
// registry that inter-route operators use to avoid recomputation across
// RVND passes (Cache, CacheMap, InterRouteCache, StarCache).
//
// None of these types is safe for concurrent use; the solver drives them
// from a single goroutine per the engine's concurrency model, and
// construction's parallel insertion phase only reads them from its
// workers, mutating them after the fan-out has completed.
package core

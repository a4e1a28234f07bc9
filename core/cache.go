package core

import "reflect"

// Cache is anything that must stay in sync with a Store/RouteContext pair
// across the life of a search: it is told about every structural edit
// (route added/removed/moved) and can be asked to reset or persist its
// per-route contents. InterRouteCache and StarCache both implement it;
// CacheMap is the registry that broadcasts these events to every cache an
// operator has asked for.
type Cache interface {
	Reset(store *Store, context *RouteContext)
	AddRoute(routeIndex int)
	RemoveRoute(routeIndex int)
	MoveRoute(dest, src int)
	Save(store *Store, context *RouteContext)
}

// CacheMap is a type-keyed registry of caches, the Go analog of the
// reference engine's typeid-indexed map: operators fetch their own cache
// type lazily on first use, and RVND drives the whole registry through one
// Reset/AddRoute/RemoveRoute/MoveRoute/Save call per structural event
// instead of operators having to track their caches individually.
type CacheMap struct {
	caches map[reflect.Type]Cache
}

// NewCacheMap returns an empty registry.
func NewCacheMap() *CacheMap {
	return &CacheMap{caches: make(map[reflect.Type]Cache)}
}

// cacheFor fetches (constructing and Reset-ing on first use) the cache
// registered under key type T, via the supplied zero-value constructor.
func cacheFor[T Cache](cm *CacheMap, newT func() T, store *Store, context *RouteContext) T {
	var zero T
	key := reflect.TypeOf(zero)
	if existing, ok := cm.caches[key]; ok {
		return existing.(T)
	}
	c := newT()
	c.Reset(store, context)
	cm.caches[key] = c
	return c
}

// GetInterRouteCache fetches the shared InterRouteCache[T] for move-type T,
// constructing it on first use.
func GetInterRouteCache[T any](cm *CacheMap, store *Store, context *RouteContext) *InterRouteCache[T] {
	return cacheFor[*InterRouteCache[T]](cm, func() *InterRouteCache[T] { return NewInterRouteCache[T]() }, store, context)
}

// GetStarCache fetches the shared StarCache, constructing it on first use.
func GetStarCache(cm *CacheMap, store *Store, context *RouteContext) *StarCache {
	return cacheFor[*StarCache](cm, NewStarCache, store, context)
}

// Reset forwards to every registered cache, used at the start of each RVND
// pass when the solution may have changed in ways no incremental event
// tracked (e.g. after a perturbation phase).
func (cm *CacheMap) Reset(store *Store, context *RouteContext) {
	for _, c := range cm.caches {
		c.Reset(store, context)
	}
}

// AddRoute forwards to every registered cache.
func (cm *CacheMap) AddRoute(routeIndex int) {
	for _, c := range cm.caches {
		c.AddRoute(routeIndex)
	}
}

// RemoveRoute forwards to every registered cache.
func (cm *CacheMap) RemoveRoute(routeIndex int) {
	for _, c := range cm.caches {
		c.RemoveRoute(routeIndex)
	}
}

// MoveRoute forwards to every registered cache.
func (cm *CacheMap) MoveRoute(dest, src int) {
	for _, c := range cm.caches {
		c.MoveRoute(dest, src)
	}
}

// Save forwards to every registered cache, used at the end of an RVND pass
// to snapshot the route sequences caches rely on to detect staleness.
func (cm *CacheMap) Save(store *Store, context *RouteContext) {
	for _, c := range cm.caches {
		c.Save(store, context)
	}
}

package solver

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/sdcvrp/construct"
	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/distmat"
)

// RNG stream identifiers, so construction and perturbation each get their
// own independent derived stream instead of drawing straight from the
// driver's root RNG and perturbing its sequence for every other caller.
const (
	streamConstruct uint64 = 1
	streamPerturb   uint64 = 2
)

// Driver owns one end-to-end solve: construct, descend to a local optimum,
// perturb-and-redescend until stagnation or the time budget runs out, keep
// whichever candidate solution is best.
type Driver struct {
	cfg      Config
	listener Listener
	log      *zap.Logger
}

// NewDriver returns a Driver. A nil listener is replaced by NopListener; a
// nil logger is replaced by zap.NewNop().
func NewDriver(cfg Config, listener Listener, log *zap.Logger) *Driver {
	if listener == nil {
		listener = NopListener{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{cfg: cfg, listener: listener, log: log}
}

// maxStagnation bounds the inner loop per spec §4.10's kMaxStagnation:
// min(StagnationCap, StagnationFactor * FleetLowerBound).
func (d *Driver) maxStagnation(p *core.Problem) int {
	bound := d.cfg.StagnationFactor * p.FleetLowerBound()
	if bound <= 0 || bound > d.cfg.StagnationCap {
		return d.cfg.StagnationCap
	}
	return bound
}

// Solve runs the outer loop until the configured time budget
// (Config.TimeLimit) is spent, returning the
// best solution found and its objective value.
func (d *Driver) Solve(p *core.Problem) (*core.Store, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	start := time.Now()
	deadline := start.Add(d.cfg.TimeLimit)
	rng := rngFromSeed(d.cfg.RandomSeed)

	// Relax the distance matrix to its all-pairs shortest-path closure once,
	// up front: every package downstream (construction, operators, CalcObjective)
	// then treats p.DistanceMatrix as already-shortest. The skipped zero-load
	// intermediate customers are rehydrated back into the winning solution via
	// optimizer.Restore just before this call returns.
	optimizer := distmat.Optimize(p)

	d.listener.OnStart()
	d.log.Info("solve started", zap.Int("num_customers", p.NumCustomers), zap.Int("capacity", p.Capacity))

	var bestStore *core.Store
	bestObjective := math.MaxInt
	stagnationLimit := d.maxStagnation(p)

	for time.Now().Before(deadline) {
		store, context, err := construct.Construct(p, d.cfg.ConstructionCost, d.cfg.ParallelConstruction, deriveRNG(rng, streamConstruct))
		if err != nil {
			return nil, 0, err
		}

		cacheMap := core.NewCacheMap()
		for routeIndex := 0; routeIndex < context.NumRoutes(); routeIndex++ {
			IntraRouteSearch(p, store, context, routeIndex, d.cfg.IntraOperators, rng)
		}
		RunRVND(p, store, context, cacheMap, d.cfg.InterOperators, d.cfg.IntraOperators, rng)

		current := store.CalcObjective(p)
		iterBest := current
		stagnation := 0
		acceptanceRule := d.cfg.NewAcceptanceRule()

		if current < bestObjective {
			bestObjective = current
			bestStore = store.Clone()
			d.listener.OnUpdated(bestStore, bestObjective)
			d.log.Info("new best", zap.Int("objective", bestObjective), zap.Duration("elapsed", time.Since(start)))
		}

		for stagnation < stagnationLimit && time.Now().Before(deadline) {
			snapshotStore := store.Clone()
			snapshotContext := context.Clone()

			Perturb(p, store, context, d.cfg.RuinMethod, d.cfg.CustomerSorter, d.cfg.BlinkRate, deriveRNG(rng, streamPerturb))
			delivered := 0
			for _, n := range store.NodeIndices() {
				delivered += store.Load(n)
			}
			if delivered != p.TotalDemand() {
				return nil, 0, core.ErrMassConservation
			}

			for routeIndex := 0; routeIndex < context.NumRoutes(); routeIndex++ {
				IntraRouteSearch(p, store, context, routeIndex, d.cfg.IntraOperators, rng)
			}
			RunRVND(p, store, context, cacheMap, d.cfg.InterOperators, d.cfg.IntraOperators, rng)

			newObjective := store.CalcObjective(p)
			if newObjective < iterBest {
				iterBest = newObjective
				if iterBest < bestObjective {
					bestObjective = iterBest
					bestStore = store.Clone()
					d.listener.OnUpdated(bestStore, bestObjective)
					d.log.Info("new best", zap.Int("objective", bestObjective), zap.Duration("elapsed", time.Since(start)))
				}
			}

			if acceptanceRule.Accept(current, newObjective) {
				current = newObjective
				stagnation = 0
			} else {
				*store = *snapshotStore
				*context = *snapshotContext
				stagnation++
			}
		}
	}

	if bestStore != nil {
		optimizer.Restore(bestStore)
	}

	d.listener.OnEnd(bestStore, bestObjective)
	d.log.Info("solve finished", zap.Int("objective", bestObjective), zap.Duration("elapsed", time.Since(start)))

	return bestStore, bestObjective, nil
}

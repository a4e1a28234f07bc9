package solver

import (
	"time"

	"github.com/katalvlaran/sdcvrp/accept"
	"github.com/katalvlaran/sdcvrp/construct"
	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/intraop"
	"github.com/katalvlaran/sdcvrp/interop"
	"github.com/katalvlaran/sdcvrp/ruin"
	"github.com/katalvlaran/sdcvrp/sorter"
)

// Config parameterizes a Driver run: the search operators it drives, the
// time budget, and the RNG seed everything derives from.
type Config struct {
	// RandomSeed seeds the solver's single process-local RNG. Construction
	// and perturbation draw from streams derived from it via deriveRNG;
	// operator tie-breaking draws from it directly. No package-level
	// generator is used.
	RandomSeed int64

	// TimeLimit bounds the outer loop's wall-clock budget.
	TimeLimit time.Duration

	// ConstructionCost selects the insertion-cost heuristic Construct uses.
	ConstructionCost construct.CostFunc

	// ParallelConstruction fans out Construct's insertion-cost scan across
	// goroutines instead of running it serially.
	ParallelConstruction bool

	// IntraOperators runs, in a random order each round, until a full round
	// improves nothing.
	IntraOperators []intraop.Operator

	// InterOperators runs, in a random order each RVND pass, applying the
	// first improving move found and restarting the permutation.
	InterOperators []interop.Operator

	// RuinMethod chooses which customers a perturbation strips out.
	RuinMethod ruin.Method

	// CustomerSorter reorders the ruined customers before reinsertion.
	CustomerSorter *sorter.Sorter

	// BlinkRate is the probability that splitreinsertion skips each candidate
	// route while the later candidates can still cover the remaining demand.
	BlinkRate float64

	// NewAcceptanceRule builds a fresh acceptance rule at the start of every
	// outer-loop iteration. Stateful rules (LAHC's history ring, SA's
	// cooling temperature) must not carry state across an outer restart,
	// so the driver never reuses one instance across iterations — it asks
	// this factory for a new one each time.
	NewAcceptanceRule func() accept.Rule

	// StagnationFactor bounds the inner loop's stagnation budget at
	// min(StagnationCap, StagnationFactor * FleetLowerBound), per spec
	// §4.10's kMaxStagnation.
	StagnationFactor int

	// StagnationCap is the hard ceiling on stagnation count regardless of
	// fleet size.
	StagnationCap int
}

// Listener receives progress notifications from a Driver run: OnStart once
// before the first construction, OnUpdated whenever best-so-far improves,
// OnEnd once with the final result.
type Listener interface {
	OnStart()
	OnUpdated(store *core.Store, objective int)
	OnEnd(store *core.Store, objective int)
}

// NopListener ignores every notification.
type NopListener struct{}

// OnStart implements Listener.
func (NopListener) OnStart() {}

// OnUpdated implements Listener.
func (NopListener) OnUpdated(*core.Store, int) {}

// OnEnd implements Listener.
func (NopListener) OnEnd(*core.Store, int) {}

// Package config decodes a YAML run configuration into the runtime
// solver.Config the driver actually executes against.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sdcvrp/accept"
	"github.com/katalvlaran/sdcvrp/construct"
	"github.com/katalvlaran/sdcvrp/intraop"
	"github.com/katalvlaran/sdcvrp/interop"
	"github.com/katalvlaran/sdcvrp/ruin"
	"github.com/katalvlaran/sdcvrp/solver"
	"github.com/katalvlaran/sdcvrp/sorter"
)

// ErrUnknownConstructionCost indicates an unrecognized construction_cost value.
var ErrUnknownConstructionCost = errors.New("config: unknown construction_cost")

// ErrUnknownRuinMethod indicates an unrecognized ruin.method value.
var ErrUnknownRuinMethod = errors.New("config: unknown ruin method")

// ErrUnknownAcceptanceRule indicates an unrecognized acceptance.rule value.
var ErrUnknownAcceptanceRule = errors.New("config: unknown acceptance rule")

// RuinConfig parameterizes the ruin method the perturbation step uses.
type RuinConfig struct {
	// Method is one of "random" or "sisrs".
	Method string `yaml:"method"`

	// RandomSizes lists the candidate ruin sizes for method "random".
	RandomSizes []int `yaml:"random_sizes"`

	// SisrsAverageCustomers, SisrsMaxLength, SisrsSplitRate and
	// SisrsPreservedProbability parameterize method "sisrs" per spec §4.7.
	SisrsAverageCustomers     int     `yaml:"sisrs_average_customers"`
	SisrsMaxLength            int     `yaml:"sisrs_max_length"`
	SisrsSplitRate            float64 `yaml:"sisrs_split_rate"`
	SisrsPreservedProbability float64 `yaml:"sisrs_preserved_probability"`
}

// AcceptanceConfig selects the outer loop's acceptance rule and its
// parameters.
type AcceptanceConfig struct {
	// Rule is one of "hill_climbing", "hill_climbing_with_equal", "lahc",
	// "simulated_annealing".
	Rule string `yaml:"rule"`

	LAHCLength           int     `yaml:"lahc_length"`
	SAInitialTemperature float64 `yaml:"sa_initial_temperature"`
	SADecay              float64 `yaml:"sa_decay"`
}

// Config is the full YAML-decoded run configuration: solver parameters plus
// the instance index range a CLI batch run walks.
type Config struct {
	RandomSeed           int64            `yaml:"random_seed"`
	TimeLimitSeconds     float64          `yaml:"time_limit_seconds"`
	ConstructionCost     string           `yaml:"construction_cost"`
	ParallelConstruction bool             `yaml:"parallel_construction"`
	BlinkRate            float64          `yaml:"blink_rate"`
	StagnationFactor     int              `yaml:"stagnation_factor"`
	StagnationCap        int              `yaml:"stagnation_cap"`
	Ruin                 RuinConfig       `yaml:"ruin"`
	Acceptance           AcceptanceConfig `yaml:"acceptance"`

	// FromIndex and ToIndex record an instance-file index range for a batch
	// run. cmd/sdcvrp-solve does not read them; it takes the range from its
	// required --from/--to flags.
	FromIndex int `yaml:"from_index"`
	ToIndex   int `yaml:"to_index"`
}

// Default returns the Config an unconfigured CLI run uses; Build wires it
// with every intra- and inter-route operator the module provides.
func Default() Config {
	return Config{
		RandomSeed:           1,
		TimeLimitSeconds:     10,
		ConstructionCost:     "mcfic",
		ParallelConstruction: false,
		BlinkRate:            0.1,
		StagnationFactor:     50,
		StagnationCap:        5000,
		Ruin: RuinConfig{
			Method:      "random",
			RandomSizes: []int{1, 2, 3},
		},
		Acceptance: AcceptanceConfig{
			Rule:       "hill_climbing",
			LAHCLength: 50,
		},
	}
}

// Load reads and YAML-decodes the configuration file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// constructionCost resolves the configured construction cost heuristic.
func (c Config) constructionCost() (construct.CostFunc, error) {
	switch c.ConstructionCost {
	case "mcfic", "":
		return construct.MCFIC, nil
	case "nfic":
		return construct.NFIC, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConstructionCost, c.ConstructionCost)
	}
}

// ruinMethod resolves the configured ruin method.
func (c Config) ruinMethod() (ruin.Method, error) {
	switch c.Ruin.Method {
	case "random", "":
		sizes := c.Ruin.RandomSizes
		if len(sizes) == 0 {
			sizes = []int{1, 2, 3}
		}
		return ruin.NewRandomRuin(sizes), nil
	case "sisrs":
		return ruin.NewSisrsRuin(
			c.Ruin.SisrsAverageCustomers,
			c.Ruin.SisrsMaxLength,
			c.Ruin.SisrsSplitRate,
			c.Ruin.SisrsPreservedProbability,
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuinMethod, c.Ruin.Method)
	}
}

// newAcceptanceRuleFactory resolves the configured acceptance rule into a
// fresh-instance-per-call factory, since the driver instantiates one rule
// per outer-loop iteration (stateful rules must not carry history across an
// outer restart).
func (c Config) newAcceptanceRuleFactory() (func() accept.Rule, error) {
	seed := c.RandomSeed
	var calls int64

	switch c.Acceptance.Rule {
	case "hill_climbing", "":
		return func() accept.Rule { return accept.HillClimbing{} }, nil
	case "hill_climbing_with_equal":
		return func() accept.Rule { return accept.HillClimbingWithEqual{} }, nil
	case "lahc":
		length := c.Acceptance.LAHCLength
		if length <= 0 {
			length = 50
		}
		return func() accept.Rule { return accept.NewLateAcceptanceHillClimbing(length) }, nil
	case "simulated_annealing":
		initial := c.Acceptance.SAInitialTemperature
		if initial <= 0 {
			initial = 100
		}
		decay := c.Acceptance.SADecay
		if decay <= 0 || decay >= 1 {
			decay = 0.995
		}
		return func() accept.Rule {
			calls++
			ruleRNG := rand.New(rand.NewSource(seed + calls))
			return accept.NewSimulatedAnnealing(initial, decay, ruleRNG)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAcceptanceRule, c.Acceptance.Rule)
	}
}

// defaultCustomerSorter builds the customer-ordering strategy used to
// sequence split-reinsertion after a ruin: weighted toward randomization
// (weight 3), with far-first and demand-first orderings (weight 1 each) as
// the alternatives.
func defaultCustomerSorter() *sorter.Sorter {
	s := sorter.New()
	s.Add(sorter.ByRandom{}, 3)
	s.Add(sorter.ByFar{}, 1)
	s.Add(sorter.ByDemand{}, 1)
	return s
}

// defaultIntraOperators returns the intra-route operator roster.
func defaultIntraOperators() []intraop.Operator {
	return []intraop.Operator{
		intraop.Exchange{},
		intraop.OrOpt{SegmentLength: 1},
		intraop.OrOpt{SegmentLength: 2},
		intraop.OrOpt{SegmentLength: 3},
	}
}

// defaultInterOperators returns the inter-route operator roster: every
// operator the interop package exports.
func defaultInterOperators() []interop.Operator {
	return []interop.Operator{
		interop.Relocate{},
		interop.Swap10,
		interop.Swap20,
		interop.Swap11,
		interop.Swap21,
		interop.Swap22,
		interop.Cross{},
		interop.SwapStar{},
		interop.SdSwapOneOne{},
		interop.SdSwapTwoOne{},
		interop.SdSwapStar{},
	}
}

// Build resolves Config into a runtime solver.Config, ready to hand to
// solver.NewDriver.
func (c Config) Build() (solver.Config, error) {
	cost, err := c.constructionCost()
	if err != nil {
		return solver.Config{}, err
	}
	ruinMethod, err := c.ruinMethod()
	if err != nil {
		return solver.Config{}, err
	}
	ruleFactory, err := c.newAcceptanceRuleFactory()
	if err != nil {
		return solver.Config{}, err
	}

	stagnationCap := c.StagnationCap
	if stagnationCap <= 0 {
		stagnationCap = 5000
	}

	return solver.Config{
		RandomSeed:           c.RandomSeed,
		TimeLimit:            time.Duration(c.TimeLimitSeconds * float64(time.Second)),
		ConstructionCost:     cost,
		ParallelConstruction: c.ParallelConstruction,
		IntraOperators:       defaultIntraOperators(),
		InterOperators:       defaultInterOperators(),
		RuinMethod:           ruinMethod,
		CustomerSorter:       defaultCustomerSorter(),
		BlinkRate:            c.BlinkRate,
		NewAcceptanceRule:    ruleFactory,
		StagnationFactor:     c.StagnationFactor,
		StagnationCap:        stagnationCap,
	}, nil
}

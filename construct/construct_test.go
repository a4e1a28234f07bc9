package construct_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/construct"
	"github.com/katalvlaran/sdcvrp/core"
)

// uniformProblem builds ten customers each demanding Q/10, on an arbitrary
// symmetric distance matrix.
func uniformProblem() *core.Problem {
	const n = 11 // depot + 10 customers
	const capacity = 100
	demands := make([]int, n)
	matrix := make([][]int, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			demands[i] = capacity / 10
		}
		matrix[i] = make([]int, n)
		for j := 0; j < n; j++ {
			if i != j {
				matrix[i][j] = 1 + (i+j)%7
			}
		}
	}
	return &core.Problem{NumCustomers: n, Capacity: capacity, Demands: demands, DistanceMatrix: matrix}
}

func splitDeliveryProblem() *core.Problem {
	return &core.Problem{
		NumCustomers:   2,
		Capacity:       10,
		Demands:        []int{0, 15},
		DistanceMatrix: [][]int{{0, 5}, {5, 0}},
	}
}

func totalLoad(context *core.RouteContext) int {
	total := 0
	for r := 0; r < context.NumRoutes(); r++ {
		total += context.Load(r)
	}
	return total
}

func TestConstructUniformDemandProducesFleetLowerBoundRoutes(t *testing.T) {
	p := uniformProblem()
	rng := rand.New(rand.NewSource(1))

	store, context, err := construct.Construct(p, construct.MCFIC, false, rng)
	require.NoError(t, err)
	require.Equal(t, p.FleetLowerBound(), context.NumRoutes())
	for r := 0; r < context.NumRoutes(); r++ {
		require.LessOrEqual(t, context.Load(r), p.Capacity)
	}
	require.Equal(t, p.TotalDemand(), totalLoad(context))
	_ = store
}

func TestConstructSplitsDemandExceedingCapacity(t *testing.T) {
	p := splitDeliveryProblem()
	rng := rand.New(rand.NewSource(1))

	store, context, err := construct.Construct(p, construct.MCFIC, false, rng)
	require.NoError(t, err)
	require.Equal(t, 2, context.NumRoutes())

	loads := []int{context.Load(0), context.Load(1)}
	require.ElementsMatch(t, []int{10, 5}, loads)

	for r := 0; r < context.NumRoutes(); r++ {
		require.Equal(t, core.Customer(1), store.Customer(context.Head(r)))
	}
}

func TestParallelInsertionMatchesSequentialFeasibility(t *testing.T) {
	p := uniformProblem()
	rng := rand.New(rand.NewSource(2))

	store, context, err := construct.Construct(p, construct.NFIC, true, rng)
	require.NoError(t, err)
	require.Equal(t, p.TotalDemand(), totalLoad(context))
	for r := 0; r < context.NumRoutes(); r++ {
		require.LessOrEqual(t, context.Load(r), p.Capacity)
	}
	_ = store
}

func TestSplitDemandChunksAtMostCapacity(t *testing.T) {
	p := splitDeliveryProblem()
	chunks := construct.SplitDemand(p)
	require.Len(t, chunks, 2)
	total := 0
	for _, c := range chunks {
		require.LessOrEqual(t, c.Demand, p.Capacity)
		total += c.Demand
	}
	require.Equal(t, p.TotalDemand(), total)
}

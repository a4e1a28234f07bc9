package sorter_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/sorter"
)

func problem() *core.Problem {
	return &core.Problem{
		NumCustomers: 4,
		Capacity:     10,
		Demands:      []int{0, 5, 1, 3},
		DistanceMatrix: [][]int{
			{0, 1, 9, 3},
			{1, 0, 8, 2},
			{9, 8, 0, 6},
			{3, 2, 6, 0},
		},
	}
}

func TestByDemandOrdersDecreasing(t *testing.T) {
	p := problem()
	customers := []core.Customer{1, 2, 3}
	sorter.ByDemand{}.Sort(p, customers, nil)
	require.Equal(t, []core.Customer{1, 3, 2}, customers)
}

func TestByFarAndByCloseAreInverses(t *testing.T) {
	p := problem()
	far := []core.Customer{1, 2, 3}
	sorter.ByFar{}.Sort(p, far, nil)
	require.Equal(t, []core.Customer{2, 3, 1}, far)

	close := []core.Customer{1, 2, 3}
	sorter.ByClose{}.Sort(p, close, nil)
	require.Equal(t, []core.Customer{1, 3, 2}, close)
}

func TestSorterWeightedSelectionOnlyPicksRegistered(t *testing.T) {
	p := problem()
	s := sorter.New()
	s.Add(sorter.ByDemand{}, 1)

	rng := rand.New(rand.NewSource(1))
	customers := []core.Customer{1, 2, 3}
	s.Sort(p, customers, rng)
	require.Equal(t, []core.Customer{1, 3, 2}, customers)
}

func TestSorterEmptyIsNoOp(t *testing.T) {
	p := problem()
	s := sorter.New()
	customers := []core.Customer{1, 2, 3}
	s.Sort(p, customers, rand.New(rand.NewSource(1)))
	require.Equal(t, []core.Customer{1, 2, 3}, customers)
}

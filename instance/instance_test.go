package instance_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/instance"
)

func writeInstance(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "case.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadParsesCoordinatesIntoEuclideanMatrix(t *testing.T) {
	path := writeInstance(t, "2 10\n3 4\n0 0\n1 0\n2 0\n")

	p, err := instance.Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, p.NumCustomers)
	require.Equal(t, 10, p.Capacity)
	require.Equal(t, []int{0, 3, 4}, p.Demands)
	require.Equal(t, 1, p.Dist(0, 1))
	require.Equal(t, 2, p.Dist(0, 2))
	require.Equal(t, 1, p.Dist(1, 2))
}

func TestLoadRoundsDistancesToNearestInteger(t *testing.T) {
	// Depot at origin, customer 1 at (3,0), customer 2 at (4,4): dm[1][2] =
	// √17 ≈ 4.12 rounds down to 4, and dm[0][2] = √32 ≈ 5.66 rounds up to 6.
	path := writeInstance(t, "2 10\n1 1\n0 0\n3 0\n4 4\n")

	p, err := instance.Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, p.Dist(1, 2))
	require.Equal(t, 6, p.Dist(0, 2))
}

func TestLoadRejectsMalformedTokens(t *testing.T) {
	path := writeInstance(t, "2 10\n3 4\n0 0\nnotanumber 0\n2 0\n")

	_, err := instance.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := instance.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestLoadAcceptsDemandExceedingCapacity(t *testing.T) {
	// Split delivery lets one customer's demand exceed a vehicle's capacity;
	// construction serves it across several visits.
	path := writeInstance(t, "1 5\n9\n0 0\n1 0\n")

	p, err := instance.Load(path)
	require.NoError(t, err)
	require.Equal(t, []int{0, 9}, p.Demands)
}

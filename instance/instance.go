// Package instance parses SDCVRP instance files into core.Problem values.
package instance

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/katalvlaran/sdcvrp/core"
)

// ErrMalformed indicates an instance file that does not match the expected
// whitespace-separated token layout (customer count, capacity, demands,
// coordinates).
var ErrMalformed = errors.New("instance: malformed instance file")

// Load reads the instance file at path and returns a fully populated
// core.Problem: the whitespace-separated format is
//
//	C capacity
//	demand_1 ... demand_C
//	x_0 y_0
//	x_1 y_1
//	...
//	x_C y_C
//
// C excludes the depot; Load shifts every customer index up by one so index
// 0 is the depot. The distance matrix is dense integer Euclidean, rounded to
// the nearest integer.
func Load(path string) (*core.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instance: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return scanner.Text(), true
	}
	nextInt := func() (int, error) {
		tok, ok := next()
		if !ok {
			return 0, fmt.Errorf("%w: unexpected end of input", ErrMalformed)
		}
		var v int
		if _, err := fmt.Sscanf(tok, "%d", &v); err != nil {
			return 0, fmt.Errorf("%w: token %q is not an integer", ErrMalformed, tok)
		}
		return v, nil
	}
	nextFloat := func() (float64, error) {
		tok, ok := next()
		if !ok {
			return 0, fmt.Errorf("%w: unexpected end of input", ErrMalformed)
		}
		var v float64
		if _, err := fmt.Sscanf(tok, "%g", &v); err != nil {
			return 0, fmt.Errorf("%w: token %q is not a number", ErrMalformed, tok)
		}
		return v, nil
	}

	customerCount, err := nextInt()
	if err != nil {
		return nil, err
	}
	capacity, err := nextInt()
	if err != nil {
		return nil, err
	}

	numCustomers := customerCount + 1 // depot shift

	demands := make([]int, numCustomers)
	for c := 1; c < numCustomers; c++ {
		d, err := nextInt()
		if err != nil {
			return nil, fmt.Errorf("instance: demand[%d]: %w", c, err)
		}
		demands[c] = d
	}

	xs := make([]float64, numCustomers)
	ys := make([]float64, numCustomers)
	for c := 0; c < numCustomers; c++ {
		x, err := nextFloat()
		if err != nil {
			return nil, fmt.Errorf("instance: coord[%d].x: %w", c, err)
		}
		y, err := nextFloat()
		if err != nil {
			return nil, fmt.Errorf("instance: coord[%d].y: %w", c, err)
		}
		xs[c] = x
		ys[c] = y
	}

	matrix := make([][]int, numCustomers)
	for i := range matrix {
		matrix[i] = make([]int, numCustomers)
	}
	for i := 0; i < numCustomers; i++ {
		for j := i + 1; j < numCustomers; j++ {
			dx := xs[i] - xs[j]
			dy := ys[i] - ys[j]
			d := int(math.Round(math.Hypot(dx, dy)))
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}

	p := &core.Problem{
		NumCustomers:   numCustomers,
		Capacity:       capacity,
		Demands:        demands,
		DistanceMatrix: matrix,
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("instance: %s: %w", path, err)
	}
	return p, nil
}

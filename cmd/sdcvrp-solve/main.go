// Command sdcvrp-solve runs the SDCVRP solver against a range of instance
// files and writes one solution file per instance.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/katalvlaran/sdcvrp/config"
	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/instance"
	"github.com/katalvlaran/sdcvrp/internal/obs"
	"github.com/katalvlaran/sdcvrp/solver"
)

func main() {
	app := &cli.App{
		Name:  "sdcvrp-solve",
		Usage: "solve a range of SDCVRP instance files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "instances-dir", Required: true, Usage: "directory containing instance files named <index>.txt"},
			&cli.IntFlag{Name: "from", Required: true, Usage: "first instance index (inclusive)"},
			&cli.IntFlag{Name: "to", Required: true, Usage: "last instance index (inclusive)"},
			&cli.StringFlag{Name: "out-dir", Required: true, Usage: "directory to write solution files into"},
			&cli.StringFlag{Name: "config", Usage: "path to a YAML run configuration; defaults if omitted"},
			&cli.BoolFlag{Name: "json", Usage: "write solutions as JSON instead of the route-per-line text form"},
			&cli.BoolFlag{Name: "debug", Usage: "use human-readable development logging"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log, err := obs.NewLogger(c.Bool("debug"))
	if err != nil {
		return cli.Exit(fmt.Errorf("sdcvrp-solve: logger: %w", err), 1)
	}
	defer log.Sync() //nolint:errcheck

	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cli.Exit(err, 1)
		}
		cfg = *loaded
	}

	solverConfig, err := cfg.Build()
	if err != nil {
		return cli.Exit(err, 1)
	}

	instancesDir := c.String("instances-dir")
	outDir := c.String("out-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return cli.Exit(fmt.Errorf("sdcvrp-solve: mkdir %s: %w", outDir, err), 1)
	}

	from, to := c.Int("from"), c.Int("to")
	asJSON := c.Bool("json")

	for index := from; index <= to; index++ {
		inPath := filepath.Join(instancesDir, strconv.Itoa(index)+".txt")
		p, err := instance.Load(inPath)
		if err != nil {
			log.Error("instance unreadable", zap.String("path", inPath), zap.Error(err))
			return cli.Exit(fmt.Errorf("sdcvrp-solve: %w", err), 1)
		}

		listener := &batchListener{log: log, index: index}
		driver := solver.NewDriver(solverConfig, listener, log)

		store, objective, err := driver.Solve(p)
		if err != nil {
			log.Error("solve failed", zap.Int("index", index), zap.Error(err))
			return cli.Exit(fmt.Errorf("sdcvrp-solve: instance %d: %w", index, err), 1)
		}

		if err := writeSolution(outDir, index, store, asJSON); err != nil {
			return cli.Exit(err, 1)
		}
		log.Info("instance solved", zap.Int("index", index), zap.Int("objective", objective))
	}

	return nil
}

// writeSolution renders store in the requested format and writes it to
// <out-dir>/<index>.{txt,json}.
func writeSolution(outDir string, index int, store *core.Store, asJSON bool) error {
	ext := "txt"
	var body []byte
	if asJSON {
		ext = "json"
		b, err := store.MarshalJSON()
		if err != nil {
			return fmt.Errorf("sdcvrp-solve: marshal instance %d: %w", index, err)
		}
		body = b
	} else {
		body = []byte(store.String())
	}

	outPath := filepath.Join(outDir, strconv.Itoa(index)+"."+ext)
	if err := os.WriteFile(outPath, body, 0o644); err != nil {
		return fmt.Errorf("sdcvrp-solve: write %s: %w", outPath, err)
	}
	return nil
}

// batchListener logs best-so-far progress for one instance within a batch
// run; it does not itself write any file (writeSolution runs once, after
// Solve returns the final best).
type batchListener struct {
	log   *zap.Logger
	index int
}

func (l *batchListener) OnStart() {
	l.log.Debug("instance started", zap.Int("index", l.index))
}

func (l *batchListener) OnUpdated(_ *core.Store, objective int) {
	l.log.Debug("best improved", zap.Int("index", l.index), zap.Int("objective", objective))
}

func (l *batchListener) OnEnd(_ *core.Store, objective int) {
	l.log.Debug("instance finished", zap.Int("index", l.index), zap.Int("objective", objective))
}

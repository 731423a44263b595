// Command kdquery answers nearest-neighbor queries against a saved kd-tree.
//
//	kdquery [flags] <tree> <query list> <results>
//
// Each line of the results file is "index,distance" for the query on the
// same line of the query list.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/kdgo"
	"github.com/hupe1980/kdgo/dataset"
	"github.com/hupe1980/kdgo/internal/app"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("kdquery", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML or JSON configuration file (.json selects JSON)")
	metric := fs.String("metric", "", "distance metric: euclidean, manhattan, signed-taxicab (overrides config)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "USAGE: kdquery [flags] <load tree filename> <query list filename> <result filename>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return 2
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *metric != "" {
		cfg.Metric = *metric
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := query(ctx, cfg, fs.Arg(0), fs.Arg(1), fs.Arg(2), stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func query(ctx context.Context, cfg app.Config, treePath, queryPath, resultPath string, stderr io.Writer) error {
	logger, err := app.NewLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}

	store, name, err := app.OpenStore(ctx, cfg.Store, treePath)
	if err != nil {
		return err
	}
	idx, err := kdgo.Load(ctx, store, name, app.IndexOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("could not open tree file: %w", err)
	}

	qf, err := os.Open(queryPath)
	if err != nil {
		return fmt.Errorf("could not open query list file: %w", err)
	}
	defer qf.Close()

	out, err := os.Create(resultPath)
	if err != nil {
		return fmt.Errorf("could not open file for saving results: %w", err)
	}
	defer out.Close()

	rw := dataset.NewResultWriter(out)
	sc := dataset.NewScanner(qf)
	for sc.Scan() {
		res, err := idx.Search(ctx, sc.Row())
		if err != nil {
			return fmt.Errorf("query %d: %w", sc.Count()-1, err)
		}
		if err := rw.Write(res.Index, res.Distance); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if err := rw.Flush(); err != nil {
		return err
	}
	return out.Close()
}

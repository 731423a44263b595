// Command kdbuild builds a kd-tree from a CSV point file and saves it.
//
//	kdbuild [flags] <data input> <tree output>
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
	fs := flag.NewFlagSet("kdbuild", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML or JSON configuration file (.json selects JSON)")
	compression := fs.String("compression", "", "tree compression: none, lz4, zstd (overrides config)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "USAGE: kdbuild [flags] <data input filename> <savetree filename>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *compression != "" {
		cfg.Compression = *compression
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := build(ctx, cfg, fs.Arg(0), fs.Arg(1), stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func build(ctx context.Context, cfg app.Config, input, output string, stderr io.Writer) error {
	logger, err := app.NewLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("could not open data input file: %w", err)
	}
	defer f.Close()

	rows, err := dataset.ReadRows(f)
	if err != nil {
		return err
	}

	idx, err := kdgo.Build(ctx, rows, app.IndexOptions(cfg, logger)...)
	if err != nil {
		return err
	}

	store, name, err := app.OpenStore(ctx, cfg.Store, output)
	if err != nil {
		return err
	}
	return idx.Save(ctx, store, name)
}

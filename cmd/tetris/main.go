package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/informatter/text-tetris-engine/engine"
	"github.com/informatter/text-tetris-engine/internal/config"
	"github.com/informatter/text-tetris-engine/internal/render"
	"github.com/informatter/text-tetris-engine/polyomino"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	configPath string
	pngPath    string
	stats      bool
	sequences  []string
	cfg        *config.Config
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("tetris", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: tetris [flags] [sequence]")
		fmt.Fprintln(fs.Output(), "Drops a comma-separated sequence of shapes such as 'Q0,I2,T4' and prints the final height.")
		fmt.Fprintln(fs.Output(), "Without a sequence, one sequence per line is read from stdin.")
		fmt.Fprintf(fs.Output(), "Shape codes: %s\n", strings.Join(polyomino.NewRegistry().Codes(), ", "))
		fs.PrintDefaults()
	}

	opts := &options{}
	verbose := fs.Bool("verbose", false, "Log the grid after every shape.")
	rows := fs.Int("rows", 0, "Number of grid rows (default from config, else 10).")
	columns := fs.Int("columns", 0, "Number of grid columns (default from config, else 10).")
	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON config file.")
	fs.StringVar(&opts.pngPath, "png", "", "Write a heat map of the final grid to this PNG file.")
	fs.BoolVar(&opts.stats, "stats", false, "Print a run report to stderr.")

	// Flags may follow the sequence.
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		opts.sequences = append(opts.sequences, fs.Arg(0))
		rest = fs.Args()[1:]
	}
	if len(opts.sequences) > 1 {
		return nil, fmt.Errorf("expected at most one sequence, got %d", len(opts.sequences))
	}

	opts.cfg = config.Defaults()
	if opts.configPath != "" {
		fileCfg, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		opts.cfg.Merge(fileCfg)
	}

	override := &config.Config{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose":
			override.Verbose = verbose
		case "rows":
			override.Rows = rows
		case "columns":
			override.Columns = columns
		}
	})
	if err := override.Validate(); err != nil {
		return nil, err
	}
	opts.cfg.Merge(override)

	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	solver, err := engine.New(opts.cfg.Options())
	if err != nil {
		return err
	}

	report := &Report{
		RunID:   solver.RunID(),
		Rows:    solver.Options().Rows,
		Columns: solver.Options().Columns,
	}

	if len(opts.sequences) == 1 {
		height, err := solver.Solve(opts.sequences[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, height)
		report.record(solver, height)
	} else {
		scanner := bufio.NewScanner(stdin)
		line := 0
		for scanner.Scan() {
			line++
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}

			solver.Reset()
			height, err := solver.Solve(input)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			fmt.Fprintln(stdout, height)
			report.record(solver, height)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	if opts.pngPath != "" {
		title := fmt.Sprintf("height %d", solver.Height())
		if err := render.SavePNG(solver.Grid(), title, opts.pngPath); err != nil {
			return err
		}
	}

	if opts.stats {
		report.Scheduler = solver.Stats()
		report.Storage = solver.StorageStats()
		report.Grid = solver.Grid().String()
		if err := report.Generate(stderr); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
	}

	return nil
}

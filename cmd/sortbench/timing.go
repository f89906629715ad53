package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/weiihann/sortbench/harness"
	"github.com/weiihann/sortbench/report"
	"github.com/weiihann/sortbench/sample"
	"github.com/weiihann/sortbench/store"
)

type timeConfig struct {
	source      string
	format      string
	algorithms  []string
	writeSorted string
	output      string
	backend     string
	dbPath      string
}

func newTimeCmd(logger *slog.Logger) *cobra.Command {
	var cfg timeConfig

	cmd := &cobra.Command{
		Use:   "time <batch.json | batch-name>",
		Short: "Time and count every sort over every sample of a batch",
		Long: `Sort an independent copy of every sample with each algorithm, recording
wall-clock time, comparisons and memory accesses. Writes one row per sample.

With --db the argument names a batch in the archive instead of a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.source = args[0]

			return runTime(cmd.Context(), logger, cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.format, "format", "csv",
		"Output format: csv, markdown, json")
	flags.StringSliceVar(&cfg.algorithms, "algorithms", nil,
		"Algorithms to run, in column order (default: "+
			strings.Join(harness.KnownAlgorithms(), ",")+")")
	flags.StringVar(&cfg.writeSorted, "write-sorted", "",
		"Directory to write each algorithm's sorted batch to")
	flags.StringVarP(&cfg.output, "output", "o", "",
		"Write the report to a file instead of stdout")
	flags.StringVar(&cfg.backend, "backend", "bbolt",
		"Archive backend when reading from --db: "+strings.Join(store.Backends(), ", "))
	flags.StringVar(&cfg.dbPath, "db", "",
		"Read the batch from this archive instead of a file")

	return cmd
}

func runTime(
	ctx context.Context,
	logger *slog.Logger,
	stdout io.Writer,
	cfg timeConfig,
) error {
	render, err := renderer(cfg.format)
	if err != nil {
		return err
	}

	algs, err := harness.ResolveAlgorithms(cfg.algorithms)
	if err != nil {
		return err
	}

	batch, err := loadBatch(ctx, cfg)
	if err != nil {
		return err
	}

	runner := harness.NewRunner(algs, logger)
	runner.KeepSorted = cfg.writeSorted != ""

	results, err := runner.Run(ctx, batch)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if len(results) == 0 {
		return fmt.Errorf("batch %s has no samples", cfg.source)
	}

	if cfg.writeSorted != "" {
		if err := writeSorted(ctx, logger, cfg.writeSorted, batch, results); err != nil {
			return err
		}
	}

	w, closeOut, err := openOutput(stdout, cfg.output)
	if err != nil {
		return err
	}

	if err := render(w, results); err != nil {
		closeOut()

		return fmt.Errorf("generate report: %w", err)
	}

	return closeOut()
}

func renderer(format string) (func(io.Writer, []harness.Result) error, error) {
	switch format {
	case "csv":
		return report.GenerateCSV, nil
	case "markdown", "md":
		return report.Generate, nil
	case "json":
		return report.GenerateJSON, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func loadBatch(ctx context.Context, cfg timeConfig) (*sample.Batch, error) {
	if cfg.dbPath == "" {
		return sample.Load(cfg.source)
	}

	s, err := store.Open(cfg.backend, cfg.dbPath)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	batch, err := s.Get(ctx, cfg.source)
	if err != nil {
		return nil, fmt.Errorf("load %s from archive: %w", cfg.source, err)
	}

	return batch, nil
}

func writeSorted(
	ctx context.Context,
	logger *slog.Logger,
	dir string,
	batch *sample.Batch,
	results []harness.Result,
) error {
	sorted, err := harness.SortedBatches(batch, results)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for alg, b := range sorted {
		path := filepath.Join(dir, strings.ToLower(alg)+".json")
		if err := b.Save(path); err != nil {
			return err
		}

		logger.InfoContext(ctx, "sorted batch written",
			slog.String("algorithm", alg),
			slog.String("path", path),
		)
	}

	return nil
}

func newReportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "report <results.json>",
		Short: "Re-render results saved with time --format json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			render, err := renderer(format)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open results %s: %w", args[0], err)
			}
			defer f.Close()

			results, err := harness.ParseResults(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			w, closeOut, err := openOutput(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			if err := render(w, results); err != nil {
				closeOut()

				return fmt.Errorf("generate report: %w", err)
			}

			return closeOut()
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown",
		"Output format: csv, markdown, json")
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"Write the report to a file instead of stdout")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/weiihann/sortbench/sample"
)

type generateConfig struct {
	arraySize    int
	numSamples   int
	seed         int64
	distribution string
	maxValue     int
	output       string
}

func newGenerateCmd(logger *slog.Logger) *cobra.Command {
	var cfg generateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a deterministic batch of random samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), logger, cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.arraySize, "array-size", 100,
		"Number of values per sample")
	flags.IntVar(&cfg.numSamples, "samples", 10,
		"Number of samples")
	flags.Int64Var(&cfg.seed, "seed", 0,
		"Random seed (0 = use current time)")
	flags.StringVar(&cfg.distribution, "distribution", "uniform",
		"Value distribution: "+strings.Join(sample.Distributions(), ", "))
	flags.IntVar(&cfg.maxValue, "max-value", 1<<20,
		"Values are drawn from [0, max-value)")
	flags.StringVarP(&cfg.output, "output", "o", "",
		"Write the batch to a file instead of stdout")

	return cmd
}

func runGenerate(
	ctx context.Context,
	logger *slog.Logger,
	stdout io.Writer,
	cfg generateConfig,
) error {
	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	batch, err := sample.NewGenerator(sample.Config{
		ArraySize:    cfg.arraySize,
		NumSamples:   cfg.numSamples,
		Seed:         seed,
		Distribution: cfg.distribution,
		MaxValue:     cfg.maxValue,
	}).Generate()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	w, closeOut, err := openOutput(stdout, cfg.output)
	if err != nil {
		return err
	}

	if err := batch.Encode(w); err != nil {
		closeOut()

		return fmt.Errorf("write batch: %w", err)
	}

	if err := closeOut(); err != nil {
		return fmt.Errorf("close batch file: %w", err)
	}

	logger.InfoContext(ctx, "batch generated",
		slog.Int("array_size", cfg.arraySize),
		slog.Int("samples", cfg.numSamples),
		slog.String("distribution", cfg.distribution),
		slog.Int64("seed", seed),
	)

	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/weiihann/sortbench/sample"
	"github.com/weiihann/sortbench/verify"
)

func newVerifyCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <batch.json>",
		Short: "Report adjacent inversions in every sample of a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := sample.Load(args[0])
			if err != nil {
				return err
			}

			rep := verify.Sorted(batch, args[0])

			logger.InfoContext(cmd.Context(), "verification finished",
				slog.String("file", args[0]),
				slog.Int("samples", len(batch.Samples)),
				slog.Int("with_inversions", rep.Metadata.SamplesWithInversions),
			)

			return writeIndented(cmd.OutOrStdout(), rep)
		},
	}
}

func newCompareCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <first.json> <second.json>",
		Short: "Diff the samples of two batches",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := sample.Load(args[0])
			if err != nil {
				return err
			}

			second, err := sample.Load(args[1])
			if err != nil {
				return err
			}

			rep := verify.Compare(first, args[0], second, args[1])

			logger.InfoContext(cmd.Context(), "comparison finished",
				slog.String("first", args[0]),
				slog.String("second", args[1]),
				slog.Int("conflicting", rep.Metadata.SamplesWithConflictingResults),
			)

			return writeIndented(cmd.OutOrStdout(), rep)
		},
	}
}

func writeIndented(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)

	return err
}

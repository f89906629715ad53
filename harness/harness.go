package harness

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/weiihann/sortbench/sample"
	"github.com/weiihann/sortbench/sorter"
)

// Runner runs a fixed list of algorithms over batches of samples.
type Runner struct {
	Algorithms []sorter.Algorithm
	// KeepSorted retains each algorithm's output in Measurement.Sorted.
	KeepSorted bool
	Logger     *slog.Logger
}

// NewRunner creates a Runner for the given algorithms.
func NewRunner(algs []sorter.Algorithm, logger *slog.Logger) *Runner {
	return &Runner{
		Algorithms: algs,
		Logger:     logger.With(slog.String("component", "harness")),
	}
}

// Run sorts an independent copy of every sample with every algorithm and
// returns one Result per sample, in batch order. Each call gets fresh
// counters; nothing carries over between samples or algorithms. The
// context is checked between samples.
func (r *Runner) Run(ctx context.Context, batch *sample.Batch) ([]Result, error) {
	if len(r.Algorithms) == 0 {
		return nil, fmt.Errorf("no algorithms to run")
	}

	r.Logger.InfoContext(ctx, "starting run",
		slog.Int("samples", len(batch.Samples)),
		slog.Int("declared_array_size", batch.Metadata.ArraySize),
		slog.Int("declared_samples", batch.Metadata.NumSamples),
	)

	results := make([]Result, 0, len(batch.Samples))
	runStart := time.Now()

	for _, s := range batch.Samples {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted before %s: %w", s.Name, err)
		}

		res := Result{
			Sample:       s.Name,
			Length:       len(s.Values),
			Measurements: make([]Measurement, 0, len(r.Algorithms)),
		}

		for _, alg := range r.Algorithms {
			res.Measurements = append(res.Measurements, r.measure(alg, s.Values))
		}

		r.Logger.DebugContext(ctx, "sample measured",
			slog.String("sample", s.Name),
			slog.Int("length", len(s.Values)),
		)

		results = append(results, res)
	}

	r.Logger.InfoContext(ctx, "run finished",
		slog.Duration("wall_time", time.Since(runStart)),
	)

	return results, nil
}

func (r *Runner) measure(alg sorter.Algorithm, values []int) Measurement {
	work := slices.Clone(values)

	start := time.Now()
	counts := alg.Sort(work)
	elapsed := time.Since(start)

	m := Measurement{
		Algorithm:      alg.Name,
		Elapsed:        elapsed,
		Comparisons:    counts.Comparisons,
		MemoryAccesses: counts.MemoryAccesses,
	}
	if r.KeepSorted {
		m.Sorted = work
	}

	return m
}

// SortedBatches rebuilds, for every algorithm, the batch as that
// algorithm sorted it. The runner must have had KeepSorted set.
func SortedBatches(batch *sample.Batch, results []Result) (map[string]*sample.Batch, error) {
	out := make(map[string]*sample.Batch)

	for _, res := range results {
		for _, m := range res.Measurements {
			if m.Sorted == nil && res.Length > 0 {
				return nil, fmt.Errorf(
					"sample %s: no sorted output kept for %s", res.Sample, m.Algorithm,
				)
			}

			b, ok := out[m.Algorithm]
			if !ok {
				b = &sample.Batch{Metadata: batch.Metadata}
				out[m.Algorithm] = b
			}

			values := m.Sorted
			if values == nil {
				values = []int{}
			}

			b.Samples = append(b.Samples, sample.Sample{Name: res.Sample, Values: values})
		}
	}

	return out, nil
}

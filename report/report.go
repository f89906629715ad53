// Package report formats harness results as CSV, markdown or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/weiihann/sortbench/harness"
)

// Column suffixes of the CSV header, one triple per algorithm.
const (
	suffixTime      = "SortTime"
	suffixCompares  = "SortCompares"
	suffixMemaccess = "SortMemaccess"
)

// GenerateCSV writes one header row and one row per sample:
//
//	Sample,InsertionSortTime,InsertionSortCompares,InsertionSortMemaccess,...
//
// Times are in seconds.
func GenerateCSV(w io.Writer, results []harness.Result) error {
	algs, err := algorithms(results)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, 1+3*len(algs))
	header = append(header, "Sample")
	for _, alg := range algs {
		header = append(header, alg+suffixTime, alg+suffixCompares, alg+suffixMemaccess)
	}

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range results {
		row := make([]string, 0, len(header))
		row = append(row, r.Sample)

		for _, m := range r.Measurements {
			row = append(row,
				formatSeconds(m.Elapsed),
				strconv.FormatUint(m.Comparisons, 10),
				strconv.FormatUint(m.MemoryAccesses, 10),
			)
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", r.Sample, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Generate writes a markdown table of every sample followed by
// per-algorithm totals.
func Generate(w io.Writer, results []harness.Result) error {
	algs, err := algorithms(results)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "## Sort Benchmark Results")
	fmt.Fprintln(w)

	// Per-sample table.
	var head, rule strings.Builder
	head.WriteString("| Sample |")
	rule.WriteString("|--------|")

	for _, alg := range algs {
		fmt.Fprintf(&head, " %s Time | %s Cmp | %s Mem |", alg, alg, alg)
		rule.WriteString("------|-----|-----|")
	}

	fmt.Fprintln(w, head.String())
	fmt.Fprintln(w, rule.String())

	for _, r := range results {
		var row strings.Builder
		fmt.Fprintf(&row, "| %s |", r.Sample)

		for _, m := range r.Measurements {
			fmt.Fprintf(&row, " %s | %d | %d |",
				formatDuration(m.Elapsed), m.Comparisons, m.MemoryAccesses)
		}

		fmt.Fprintln(w, row.String())
	}

	fmt.Fprintln(w)

	// Totals.
	totals := summarize(algs, results)
	fastest := findFastest(totals)

	fmt.Fprintln(w, "| Algorithm | Total Time | Comparisons | Memory Accesses | Relative |")
	fmt.Fprintln(w, "|-----------|------------|-------------|-----------------|----------|")

	for _, t := range totals {
		relative := 1.0
		if fastest > 0 && t.elapsed > 0 {
			relative = float64(t.elapsed) / float64(fastest)
		}

		fmt.Fprintf(w, "| %s | %s | %d | %d | %.2fx |\n",
			t.algorithm,
			formatDuration(t.elapsed),
			t.comparisons,
			t.memoryAccesses,
			relative,
		)
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

// algorithms returns the column order and checks that every result
// carries the same algorithms in that order.
func algorithms(results []harness.Result) ([]string, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to report")
	}

	algs := make([]string, len(results[0].Measurements))
	for i, m := range results[0].Measurements {
		algs[i] = m.Algorithm
	}

	for _, r := range results[1:] {
		if len(r.Measurements) != len(algs) {
			return nil, fmt.Errorf("sample %s has %d measurements, want %d",
				r.Sample, len(r.Measurements), len(algs))
		}

		for i, m := range r.Measurements {
			if m.Algorithm != algs[i] {
				return nil, fmt.Errorf("sample %s: column %d is %s, want %s",
					r.Sample, i, m.Algorithm, algs[i])
			}
		}
	}

	return algs, nil
}

type total struct {
	algorithm      string
	elapsed        time.Duration
	comparisons    uint64
	memoryAccesses uint64
}

func summarize(algs []string, results []harness.Result) []total {
	totals := make([]total, len(algs))
	for i, alg := range algs {
		totals[i].algorithm = alg
	}

	for _, r := range results {
		for i, m := range r.Measurements {
			totals[i].elapsed += m.Elapsed
			totals[i].comparisons += m.Comparisons
			totals[i].memoryAccesses += m.MemoryAccesses
		}
	}

	return totals
}

func findFastest(totals []total) time.Duration {
	fastest := time.Duration(math.MaxInt64)
	for _, t := range totals {
		if t.elapsed > 0 && t.elapsed < fastest {
			fastest = t.elapsed
		}
	}

	if fastest == math.MaxInt64 {
		return 0
	}

	return fastest
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'g', 6, 64)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

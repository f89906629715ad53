package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/weiihann/sortbench/sample"
	"github.com/weiihann/sortbench/sorter"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBatch() *sample.Batch {
	return &sample.Batch{
		Metadata: sample.Metadata{ArraySize: 4, NumSamples: 3},
		Samples: []sample.Sample{
			{Name: "Sample1", Values: []int{4, 2, 2, 1}},
			{Name: "Sample2", Values: []int{1, 2, 3, 4}},
			{Name: "Sample3", Values: []int{}},
		},
	}
}

func TestRunMeasuresEveryAlgorithm(t *testing.T) {
	runner := NewRunner(sorter.Algorithms(), discardLogger())

	results, err := runner.Run(context.Background(), testBatch())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	first := results[0]
	if first.Sample != "Sample1" || first.Length != 4 {
		t.Errorf("first result = %s/%d, want Sample1/4", first.Sample, first.Length)
	}

	gotAlgs := make([]string, len(first.Measurements))
	for i, m := range first.Measurements {
		gotAlgs[i] = m.Algorithm
	}
	if diff := cmp.Diff([]string{"Insertion", "Merge", "Quick"}, gotAlgs); diff != "" {
		t.Errorf("algorithm order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]sorter.Counters{
		"Insertion": {Comparisons: 6, MemoryAccesses: 22},
		"Merge":     {Comparisons: 5, MemoryAccesses: 24},
		"Quick":     {Comparisons: 17, MemoryAccesses: 23},
	}
	for _, m := range first.Measurements {
		got := sorter.Counters{Comparisons: m.Comparisons, MemoryAccesses: m.MemoryAccesses}
		if got != want[m.Algorithm] {
			t.Errorf("%s counters = %+v, want %+v", m.Algorithm, got, want[m.Algorithm])
		}
		if m.Elapsed < 0 {
			t.Errorf("%s elapsed = %v, want >= 0", m.Algorithm, m.Elapsed)
		}
	}

	for _, m := range results[2].Measurements {
		if m.Comparisons != 0 || m.MemoryAccesses != 0 {
			t.Errorf("empty sample %s: %+v, want zero counts", m.Algorithm, m)
		}
	}
}

func TestRunDoesNotMutateBatch(t *testing.T) {
	batch := testBatch()
	runner := NewRunner(sorter.Algorithms(), discardLogger())

	if _, err := runner.Run(context.Background(), batch); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if diff := cmp.Diff(testBatch(), batch); diff != "" {
		t.Errorf("batch mutated (-want +got):\n%s", diff)
	}
}

func TestRunCountsIndependentAcrossSamples(t *testing.T) {
	batch := &sample.Batch{Samples: []sample.Sample{
		{Name: "a", Values: []int{4, 2, 2, 1}},
		{Name: "b", Values: []int{4, 2, 2, 1}},
	}}

	runner := NewRunner(sorter.Algorithms(), discardLogger())

	results, err := runner.Run(context.Background(), batch)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for i := range results[0].Measurements {
		a, b := results[0].Measurements[i], results[1].Measurements[i]
		if a.Comparisons != b.Comparisons || a.MemoryAccesses != b.MemoryAccesses {
			t.Errorf("%s: counts leaked between samples: %+v vs %+v",
				a.Algorithm, a, b)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(sorter.Algorithms(), discardLogger())

	_, err := runner.Run(ctx, testBatch())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunNoAlgorithms(t *testing.T) {
	runner := NewRunner(nil, discardLogger())
	if _, err := runner.Run(context.Background(), testBatch()); err == nil {
		t.Error("expected error with no algorithms")
	}
}

func TestSortedBatches(t *testing.T) {
	runner := NewRunner(sorter.Algorithms(), discardLogger())
	runner.KeepSorted = true

	batch := testBatch()

	results, err := runner.Run(context.Background(), batch)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	sorted, err := SortedBatches(batch, results)
	if err != nil {
		t.Fatalf("SortedBatches failed: %v", err)
	}

	if len(sorted) != 3 {
		t.Fatalf("got %d batches, want 3", len(sorted))
	}

	for name, b := range sorted {
		if b.Metadata != batch.Metadata {
			t.Errorf("%s metadata = %+v", name, b.Metadata)
		}
		for _, s := range b.Samples {
			if !slices.IsSorted(s.Values) {
				t.Errorf("%s/%s not sorted: %v", name, s.Name, s.Values)
			}
		}
		if diff := cmp.Diff(batch.Names(), b.Names()); diff != "" {
			t.Errorf("%s names mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestSortedBatchesWithoutKeepSorted(t *testing.T) {
	runner := NewRunner(sorter.Algorithms(), discardLogger())
	batch := testBatch()

	results, err := runner.Run(context.Background(), batch)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := SortedBatches(batch, results); err == nil {
		t.Error("expected error when sorted output was not kept")
	}
}

func TestResolveAlgorithms(t *testing.T) {
	algs, err := ResolveAlgorithms(nil)
	if err != nil {
		t.Fatalf("ResolveAlgorithms(nil) failed: %v", err)
	}
	if len(algs) != 3 {
		t.Errorf("got %d algorithms, want 3", len(algs))
	}

	algs, err = ResolveAlgorithms([]string{"quick", "insertion"})
	if err != nil {
		t.Fatalf("ResolveAlgorithms failed: %v", err)
	}
	if algs[0].Name != "Quick" || algs[1].Name != "Insertion" {
		t.Errorf("order = %s,%s, want Quick,Insertion", algs[0].Name, algs[1].Name)
	}

	if _, err := ResolveAlgorithms([]string{"heap"}); !errors.Is(err, sorter.ErrUnknownAlgorithm) {
		t.Errorf("err = %v, want ErrUnknownAlgorithm", err)
	}
	if _, err := ResolveAlgorithms([]string{"merge", "MergeSort"}); err == nil {
		t.Error("expected error for duplicate algorithm")
	}
}

func TestKnownAlgorithms(t *testing.T) {
	if diff := cmp.Diff([]string{"Insertion", "Merge", "Quick"}, KnownAlgorithms()); diff != "" {
		t.Errorf("known algorithms mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResults(t *testing.T) {
	input := `[{
		"sample": "Sample1",
		"length": 4,
		"measurements": [
			{"algorithm": "Quick", "elapsed_ns": 1500, "comparisons": 17, "memory_accesses": 23}
		]
	}]`

	results, err := ParseResults(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseResults failed: %v", err)
	}

	m := results[0].Measurements[0]
	if m.Algorithm != "Quick" || m.Comparisons != 17 || m.MemoryAccesses != 23 {
		t.Errorf("measurement = %+v", m)
	}
	if m.Elapsed.Nanoseconds() != 1500 {
		t.Errorf("elapsed = %v, want 1.5µs", m.Elapsed)
	}
}

func TestParseResultsRoundTrip(t *testing.T) {
	runner := NewRunner(sorter.Algorithms(), discardLogger())

	results, err := runner.Run(context.Background(), testBatch())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(results); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	parsed, err := ParseResults(&buf)
	if err != nil {
		t.Fatalf("ParseResults failed: %v", err)
	}

	if diff := cmp.Diff(results, parsed); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResultsInvalid(t *testing.T) {
	if _, err := ParseResults(strings.NewReader(`not json at all`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := ParseResults(strings.NewReader(`[{"length": 1}]`)); err == nil {
		t.Error("expected error for missing sample name")
	}
}

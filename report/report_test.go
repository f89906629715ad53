package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/weiihann/sortbench/harness"
)

func measurements(scale uint64) []harness.Measurement {
	return []harness.Measurement{
		{Algorithm: "Insertion", Elapsed: 2 * time.Millisecond, Comparisons: 6 * scale, MemoryAccesses: 22 * scale},
		{Algorithm: "Merge", Elapsed: time.Millisecond, Comparisons: 5 * scale, MemoryAccesses: 24 * scale},
		{Algorithm: "Quick", Elapsed: 1500 * time.Microsecond, Comparisons: 17 * scale, MemoryAccesses: 23 * scale},
	}
}

func testResults() []harness.Result {
	return []harness.Result{
		{Sample: "Sample1", Length: 4, Measurements: measurements(1)},
		{Sample: "Sample2", Length: 4, Measurements: measurements(2)},
	}
}

func TestGenerateCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateCSV(&buf, testResults()); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		{
			"Sample",
			"InsertionSortTime", "InsertionSortCompares", "InsertionSortMemaccess",
			"MergeSortTime", "MergeSortCompares", "MergeSortMemaccess",
			"QuickSortTime", "QuickSortCompares", "QuickSortMemaccess",
		},
		{"Sample1", "0.002", "6", "22", "0.001", "5", "24", "0.0015", "17", "23"},
		{"Sample2", "0.002", "12", "44", "0.001", "10", "48", "0.0015", "34", "46"},
	}

	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, testResults()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"| Sample | Insertion Time | Insertion Cmp | Insertion Mem |",
		"| Sample1 | 2.00ms | 6 | 22 |",
		"| Merge | 2.00ms | 15 | 72 | 1.00x |",
		"| Insertion | 4.00ms | 18 | 66 | 2.00x |",
		"| Quick | 3.00ms | 51 | 69 | 1.50x |",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, nil); err == nil {
		t.Error("expected error for empty results")
	}
	if err := GenerateCSV(&buf, nil); err == nil {
		t.Error("expected error for empty results")
	}
}

func TestGenerateMismatchedColumns(t *testing.T) {
	results := testResults()
	results[1].Measurements = results[1].Measurements[:2]

	var buf bytes.Buffer
	if err := GenerateCSV(&buf, results); err == nil {
		t.Error("expected error for missing measurement")
	}

	results = testResults()
	results[1].Measurements[0].Algorithm = "Quick"
	if err := Generate(&buf, results); err == nil {
		t.Error("expected error for reordered measurement")
	}
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateJSON(&buf, testResults()); err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}

	parsed, err := harness.ParseResults(&buf)
	if err != nil {
		t.Fatalf("output is not valid results JSON: %v", err)
	}

	if diff := cmp.Diff(testResults(), parsed); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "0ns"},
		{999, "999ns"},
		{1500 * time.Nanosecond, "1.50µs"},
		{2 * time.Millisecond, "2.00ms"},
		{1500 * time.Millisecond, "1.50s"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.input)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "0"},
		{time.Second, "1"},
		{1234567 * time.Nanosecond, "0.00123457"},
		{2 * time.Microsecond, "2e-06"},
	}

	for _, tt := range tests {
		got := formatSeconds(tt.input)
		if got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

package verify

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/weiihann/sortbench/sample"
)

// Messages used for structural mismatches.
const (
	MissingMessage = "Sample missing from one file"
	SizeMessage    = "Arrays have different sizes"
)

// Conflict is the report entry for one sample that differs between two
// batches. Exactly one of Missing, Size or Positions is set.
type Conflict struct {
	Missing   bool
	Size      bool
	Positions map[string]Pair
	// Arrays holds both versions of the sample keyed by source name and
	// is only filled for positional mismatches.
	Arrays    map[string][]int
}

// MarshalJSON emits the source arrays beside a "Mismatches" object.
func (c Conflict) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Arrays)+1)
	for name, values := range c.Arrays {
		out[name] = values
	}

	switch {
	case c.Missing:
		out["Mismatches"] = map[string]string{"missing": MissingMessage}
	case c.Size:
		out["Mismatches"] = map[string]string{"size": SizeMessage}
	default:
		out["Mismatches"] = c.Positions
	}

	return json.Marshal(out)
}

// FileMetadata describes one side of a comparison.
type FileMetadata struct {
	Name       string `json:"name"`
	ArraySize  int    `json:"arraySize"`
	NumSamples int    `json:"numSamples"`
}

// CompareMetadata summarizes a comparison.
type CompareMetadata struct {
	File1                         FileMetadata `json:"File1"`
	File2                         FileMetadata `json:"File2"`
	SamplesWithConflictingResults int          `json:"samplesWithConflictingResults"`
}

// CompareReport lists every sample on which two batches disagree.
type CompareReport struct {
	Metadata  CompareMetadata
	Conflicts map[string]Conflict
}

// MarshalJSON flattens the report into the shared top-level object.
func (r CompareReport) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Conflicts)+1)
	for name, c := range r.Conflicts {
		out[name] = c
	}
	out[sample.MetadataKey] = r.Metadata

	return json.Marshal(out)
}

// Consistent reports whether the two batches agreed on every sample.
func (r CompareReport) Consistent() bool {
	return r.Metadata.SamplesWithConflictingResults == 0
}

// Compare diffs batches a and b, named nameA and nameB in the report.
// Every sample name found in either batch is checked: present in both,
// same length, then equal position by position.
func Compare(a *sample.Batch, nameA string, b *sample.Batch, nameB string) CompareReport {
	report := CompareReport{
		Metadata: CompareMetadata{
			File1: FileMetadata{
				Name:       nameA,
				ArraySize:  a.Metadata.ArraySize,
				NumSamples: a.Metadata.NumSamples,
			},
			File2: FileMetadata{
				Name:       nameB,
				ArraySize:  b.Metadata.ArraySize,
				NumSamples: b.Metadata.NumSamples,
			},
		},
		Conflicts: make(map[string]Conflict),
	}

	byNameA, byNameB := index(a), index(b)

	names := append(a.Names(), b.Names()...)
	slices.Sort(names)
	names = slices.Compact(names)

	for _, name := range names {
		sa, inA := byNameA[name]
		sb, inB := byNameB[name]

		var c Conflict

		switch {
		case !inA || !inB:
			c.Missing = true

		case len(sa) != len(sb):
			c.Size = true

		default:
			c.Positions = mismatches(sa, sb)
			if len(c.Positions) == 0 {
				continue
			}

			c.Arrays = map[string][]int{nameA: sa, nameB: sb}
		}

		report.Conflicts[name] = c
		report.Metadata.SamplesWithConflictingResults++
	}

	return report
}

func index(b *sample.Batch) map[string][]int {
	out := make(map[string][]int, len(b.Samples))
	for _, s := range b.Samples {
		out[s.Name] = s.Values
	}

	return out
}

func mismatches(a, b []int) map[string]Pair {
	var out map[string]Pair

	for i := range a {
		if a[i] == b[i] {
			continue
		}

		if out == nil {
			out = make(map[string]Pair)
		}
		out[strconv.Itoa(i)] = Pair{a[i], b[i]}
	}

	return out
}

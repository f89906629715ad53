// Package verify checks batches of samples: that each sample is in
// ascending order, and that two batches hold the same samples.
//
// Reports serialize to a single JSON object in which sample names and the
// "metadata" key share the top level. Keys come out sorted.
package verify

import (
	"encoding/json"
	"strconv"

	"github.com/weiihann/sortbench/sample"
)

// Pair holds two values reported side by side, serialized as [a, b].
type Pair [2]int

// Inversions maps the index of each offending position to its values.
type Inversions map[string]Pair

// SampleInversions is the report entry for one unsorted sample.
type SampleInversions struct {
	ConsecutiveInversions Inversions `json:"ConsecutiveInversions"`
	Sample                []int      `json:"sample"`
}

// SortedMetadata summarizes a sortedness check.
type SortedMetadata struct {
	ArraySize             int    `json:"arraySize"`
	File                  string `json:"file"`
	NumSamples            int    `json:"numSamples"`
	SamplesWithInversions int    `json:"samplesWithInversions"`
}

// SortedReport lists the samples of one batch that are not ascending.
type SortedReport struct {
	Metadata SortedMetadata
	Samples  map[string]SampleInversions
}

// MarshalJSON flattens the report into the shared top-level object.
func (r SortedReport) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Samples)+1)
	for name, s := range r.Samples {
		out[name] = s
	}
	out[sample.MetadataKey] = r.Metadata

	return json.Marshal(out)
}

// Clean reports whether no sample had an inversion.
func (r SortedReport) Clean() bool { return r.Metadata.SamplesWithInversions == 0 }

// Sorted finds every adjacent pair a[i] > a[i+1] in every sample of batch.
// file names the batch source in the report metadata.
func Sorted(batch *sample.Batch, file string) SortedReport {
	report := SortedReport{
		Metadata: SortedMetadata{
			ArraySize:  batch.Metadata.ArraySize,
			File:       file,
			NumSamples: batch.Metadata.NumSamples,
		},
		Samples: make(map[string]SampleInversions),
	}

	for _, s := range batch.Samples {
		inv := inversions(s.Values)
		if len(inv) == 0 {
			continue
		}

		report.Samples[s.Name] = SampleInversions{
			ConsecutiveInversions: inv,
			Sample:                s.Values,
		}
		report.Metadata.SamplesWithInversions++
	}

	return report
}

func inversions(values []int) Inversions {
	var inv Inversions

	for i := 0; i+1 < len(values); i++ {
		if values[i] <= values[i+1] {
			continue
		}

		if inv == nil {
			inv = make(Inversions)
		}
		inv[strconv.Itoa(i)] = Pair{values[i], values[i+1]}
	}

	return inv
}

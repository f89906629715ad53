// Package harness times and counts the instrumented sorts over every sample
// of a batch.
package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Measurement holds one algorithm's run over one sample.
type Measurement struct {
	Algorithm      string        `json:"algorithm"`
	Elapsed        time.Duration `json:"elapsed_ns"`
	Comparisons    uint64        `json:"comparisons"`
	MemoryAccesses uint64        `json:"memory_accesses"`
	Sorted         []int         `json:"-"`
}

// Result holds every algorithm's measurement for one sample, in the
// runner's algorithm order.
type Result struct {
	Sample       string        `json:"sample"`
	Length       int           `json:"length"`
	Measurements []Measurement `json:"measurements"`
}

// ParseResults decodes results previously written as JSON.
func ParseResults(r io.Reader) ([]Result, error) {
	var results []Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	for i, res := range results {
		if res.Sample == "" {
			return nil, fmt.Errorf("result %d: missing sample name", i)
		}
	}

	return results, nil
}

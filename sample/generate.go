package sample

import (
	"fmt"
	mrand "math/rand"
	"slices"
)

// Distributions lists the value layouts the Generator knows.
func Distributions() []string {
	return []string{"uniform", "sorted", "reversed", "few-unique", "equal"}
}

// Config controls batch generation parameters.
type Config struct {
	ArraySize    int
	NumSamples   int
	Seed         int64
	Distribution string
	MaxValue     int
}

// Generator produces deterministic batches from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	if cfg.MaxValue <= 0 {
		cfg.MaxValue = 1 << 20
	}

	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Generate builds a batch of NumSamples samples named Sample1..SampleN.
func (g *Generator) Generate() (*Batch, error) {
	if g.cfg.ArraySize < 0 {
		return nil, fmt.Errorf("array size must not be negative, got %d",
			g.cfg.ArraySize)
	}
	if g.cfg.NumSamples < 0 {
		return nil, fmt.Errorf("sample count must not be negative, got %d",
			g.cfg.NumSamples)
	}

	batch := &Batch{
		Metadata: Metadata{
			ArraySize:  g.cfg.ArraySize,
			NumSamples: g.cfg.NumSamples,
		},
		Samples: make([]Sample, 0, g.cfg.NumSamples),
	}

	for i := 1; i <= g.cfg.NumSamples; i++ {
		batch.Samples = append(batch.Samples, Sample{
			Name:   fmt.Sprintf("Sample%d", i),
			Values: g.values(),
		})
	}

	return batch, nil
}

func (g *Generator) values() []int {
	n := g.cfg.ArraySize
	out := make([]int, n)

	switch g.cfg.Distribution {
	case "sorted":
		g.fillUniform(out)
		slices.Sort(out)

	case "reversed":
		g.fillUniform(out)
		slices.Sort(out)
		slices.Reverse(out)

	case "few-unique":
		// A handful of distinct values so duplicates dominate.
		distinct := max(1, min(8, n/4))
		pool := make([]int, distinct)
		g.fillUniform(pool)
		for i := range out {
			out[i] = pool[g.rng.Intn(distinct)]
		}

	case "equal":
		v := g.rng.Intn(g.cfg.MaxValue)
		for i := range out {
			out[i] = v
		}

	default:
		// Fall back to uniform if unknown distribution.
		g.fillUniform(out)
	}

	return out
}

func (g *Generator) fillUniform(out []int) {
	for i := range out {
		out[i] = g.rng.Intn(g.cfg.MaxValue)
	}
}

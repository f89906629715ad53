// Package sample models batches of named integer samples and reads and
// writes them in the batch JSON format:
//
//	{"metadata": {"arraySize": 4, "numSamples": 2},
//	 "Sample1": [4, 2, 2, 1],
//	 "Sample2": [9, 0, 3, 1]}
//
// The metadata is carried through for reporting and is never checked
// against the samples themselves.
package sample

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// MetadataKey is the reserved top-level key holding batch metadata.
const MetadataKey = "metadata"

var (
	// ErrMissingMetadata is returned when a batch has no usable metadata.
	ErrMissingMetadata = errors.New("missing metadata")
	// ErrNotArray is returned when a sample value is not a JSON array.
	ErrNotArray = errors.New("sample is not an array")
	// ErrDuplicateSample is returned when a sample name appears twice.
	ErrDuplicateSample = errors.New("duplicate sample")
)

// Metadata is the batch-level information declared by the producer.
type Metadata struct {
	ArraySize  int `json:"arraySize"`
	NumSamples int `json:"numSamples"`
}

// Sample is one named integer sequence.
type Sample struct {
	Name   string
	Values []int
}

// Batch is an ordered collection of samples plus their metadata.
type Batch struct {
	Metadata Metadata
	Samples  []Sample
}

// Lookup returns the sample with the given name.
func (b *Batch) Lookup(name string) (Sample, bool) {
	for _, s := range b.Samples {
		if s.Name == name {
			return s, true
		}
	}

	return Sample{}, false
}

// Names returns the sample names in batch order.
func (b *Batch) Names() []string {
	names := make([]string, len(b.Samples))
	for i, s := range b.Samples {
		names[i] = s.Name
	}

	return names
}

// Clone returns a deep copy of b.
func (b *Batch) Clone() *Batch {
	out := &Batch{
		Metadata: b.Metadata,
		Samples:  make([]Sample, len(b.Samples)),
	}
	for i, s := range b.Samples {
		out.Samples[i] = Sample{Name: s.Name, Values: slices.Clone(s.Values)}
	}

	return out
}

// rawMetadata detects absent fields, which the strict format rejects.
type rawMetadata struct {
	ArraySize  *int `json:"arraySize"`
	NumSamples *int `json:"numSamples"`
}

// Decode reads one batch from r, keeping samples in file order.
func Decode(r io.Reader) (*Batch, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("read batch: top level is not an object")
	}

	batch := &Batch{}
	seen := make(map[string]bool)
	haveMetadata := false

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}

		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("read key: unexpected token %v", tok)
		}

		if name == MetadataKey {
			md, err := decodeMetadata(dec)
			if err != nil {
				return nil, err
			}

			batch.Metadata = md
			haveMetadata = true

			continue
		}

		if seen[name] {
			return nil, fmt.Errorf("%w %q", ErrDuplicateSample, name)
		}
		seen[name] = true

		values, err := decodeValues(dec)
		if err != nil {
			return nil, fmt.Errorf("sample %q: %w", name, err)
		}

		batch.Samples = append(batch.Samples, Sample{Name: name, Values: values})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read batch end: %w", err)
	}

	if !haveMetadata {
		return nil, ErrMissingMetadata
	}

	return batch, nil
}

func decodeMetadata(dec *json.Decoder) (Metadata, error) {
	var raw rawMetadata
	if err := dec.Decode(&raw); err != nil {
		return Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}

	if raw.ArraySize == nil {
		return Metadata{}, fmt.Errorf("%w: arraySize", ErrMissingMetadata)
	}
	if raw.NumSamples == nil {
		return Metadata{}, fmt.Errorf("%w: numSamples", ErrMissingMetadata)
	}

	return Metadata{ArraySize: *raw.ArraySize, NumSamples: *raw.NumSamples}, nil
}

func decodeValues(dec *json.Decoder) ([]int, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, ErrNotArray
	}

	values := []int{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}

	return values, nil
}

// Load reads a batch from the named file.
func Load(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch %s: %w", path, err)
	}
	defer f.Close()

	batch, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return batch, nil
}

// Encode writes b to w with metadata first and samples in batch order.
func (b *Batch) Encode(w io.Writer) error {
	var buf bytes.Buffer

	md, err := json.Marshal(b.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	buf.WriteString("{\n  \"" + MetadataKey + "\": ")
	buf.Write(md)

	for _, s := range b.Samples {
		name, err := json.Marshal(s.Name)
		if err != nil {
			return fmt.Errorf("encode sample name: %w", err)
		}

		values := s.Values
		if values == nil {
			values = []int{}
		}

		arr, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("encode sample %q: %w", s.Name, err)
		}

		buf.WriteString(",\n  ")
		buf.Write(name)
		buf.WriteString(": ")
		buf.Write(arr)
	}

	buf.WriteString("\n}\n")

	_, err = w.Write(buf.Bytes())

	return err
}

// Save writes b to the named file, replacing it.
func (b *Batch) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := b.Encode(f); err != nil {
		f.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

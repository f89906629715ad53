// Package store archives sample batches in an embedded key-value database.
// Batches are kept in their JSON file encoding, keyed by name.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/weiihann/sortbench/sample"
)

// ErrNotFound is returned when no batch has the requested name.
var ErrNotFound = errors.New("batch not found")

// Store persists named batches.
type Store interface {
	Put(ctx context.Context, name string, batch *sample.Batch) error
	Get(ctx context.Context, name string) (*sample.Batch, error)
	// List returns batch names in ascending key order.
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Backends returns the supported backend names.
func Backends() []string {
	return []string{"bbolt", "pebble", "badger"}
}

// Open opens or creates a store of the given backend at path. bbolt uses
// path as a file; pebble and badger use it as a directory.
func Open(backend, path string) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path must not be empty")
	}

	var (
		s   Store
		err error
	)

	switch backend {
	case "bbolt":
		s, err = openBolt(path)
	case "pebble":
		s, err = openPebble(path)
	case "badger":
		s, err = openBadger(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}

	if err != nil {
		return nil, err
	}

	return s, nil
}

func encode(name string, batch *sample.Batch) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("batch name must not be empty")
	}

	var buf bytes.Buffer
	if err := batch.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode batch %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

func decode(name string, data []byte) (*sample.Batch, error) {
	batch, err := sample.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", name, err)
	}

	return batch, nil
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// DirSize returns the total size of the regular files under path, which
// may itself be a single file.
func DirSize(path string) (uint64, error) {
	var size uint64

	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += uint64(info.Size())
		}

		return nil
	})

	return size, err
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/weiihann/sortbench/sample"
)

var pebblePrefix = []byte("batch/")

type pebbleStore struct {
	db *pebble.DB
}

func openPebble(dir string) (*pebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble %s: %w", dir, err)
	}

	return &pebbleStore{db: db}, nil
}

func pebbleKey(name string) []byte {
	return append(append([]byte(nil), pebblePrefix...), name...)
}

func (s *pebbleStore) Put(_ context.Context, name string, batch *sample.Batch) error {
	data, err := encode(name, batch)
	if err != nil {
		return err
	}

	return s.db.Set(pebbleKey(name), data, pebble.Sync)
}

func (s *pebbleStore) Get(_ context.Context, name string) (*sample.Batch, error) {
	v, closer, err := s.db.Get(pebbleKey(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}

	data := append([]byte(nil), v...)
	if err := closer.Close(); err != nil {
		return nil, fmt.Errorf("release %s: %w", name, err)
	}

	return decode(name, data)
}

func (s *pebbleStore) List(ctx context.Context) ([]string, error) {
	upper := append([]byte(nil), pebblePrefix...)
	upper[len(upper)-1]++

	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: pebblePrefix,
		UpperBound: upper,
	})
	if err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}

	var names []string
	for it.First(); it.Valid(); it.Next() {
		if err := ctx.Err(); err != nil {
			it.Close()

			return nil, err
		}
		names = append(names, string(it.Key()[len(pebblePrefix):]))
	}

	if err := it.Close(); err != nil {
		return nil, fmt.Errorf("close iterator: %w", err)
	}

	return names, nil
}

func (s *pebbleStore) Delete(ctx context.Context, name string) error {
	if _, err := s.Get(ctx, name); err != nil {
		return err
	}

	return s.db.Delete(pebbleKey(name), pebble.Sync)
}

func (s *pebbleStore) Close() error {
	return s.db.Close()
}

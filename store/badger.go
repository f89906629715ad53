package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/weiihann/sortbench/sample"
)

var badgerPrefix = []byte("batch/")

type badgerStore struct {
	db *badger.DB
}

func openBadger(dir string) (*badgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", dir, err)
	}

	return &badgerStore{db: db}, nil
}

func badgerKey(name string) []byte {
	return append(append([]byte(nil), badgerPrefix...), name...)
}

func (s *badgerStore) Put(_ context.Context, name string, batch *sample.Batch) error {
	data, err := encode(name, batch)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(name), data)
	})
}

func (s *badgerStore) Get(_ context.Context, name string) (*sample.Batch, error) {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return notFound(name)
		}
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)

		return err
	})
	if err != nil {
		return nil, err
	}

	return decode(name, data)
}

func (s *badgerStore) List(ctx context.Context) ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = badgerPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			names = append(names, string(it.Item().Key()[len(badgerPrefix):]))
		}

		return nil
	})

	return names, err
}

func (s *badgerStore) Delete(_ context.Context, name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := badgerKey(name)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return notFound(name)
		} else if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/weiihann/sortbench/sample"
	"go.etcd.io/bbolt"
)

var boltBucket = []byte("batches")

type boltStore struct {
	db *bbolt.DB
}

func openBolt(path string) (*boltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)

		return err
	})
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

func (s *boltStore) Put(_ context.Context, name string, batch *sample.Batch) error {
	data, err := encode(name, batch)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(name), data)
	})
}

func (s *boltStore) Get(_ context.Context, name string) (*sample.Batch, error) {
	var data []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(name))
		if v == nil {
			return notFound(name)
		}

		// v is only valid inside the transaction.
		data = append([]byte(nil), v...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return decode(name, data)
}

func (s *boltStore) List(ctx context.Context) ([]string, error) {
	var names []string

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).ForEach(func(k, _ []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			names = append(names, string(k))

			return nil
		})
	})

	return names, err
}

func (s *boltStore) Delete(_ context.Context, name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucket)
		if b.Get([]byte(name)) == nil {
			return notFound(name)
		}

		return b.Delete([]byte(name))
	})
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

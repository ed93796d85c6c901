package kvdb

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"go.etcd.io/bbolt"
)

type boltStore struct {
	db   *bbolt.DB
	next uint64
}

func openBolt(dir string) (*boltStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "bbolt: mkdir")
	}
	db, err := bbolt.Open(filepath.Join(dir, "keys.db"), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "bbolt: open")
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Name() string { return string(Bbolt) }

func (s *boltStore) Ingest(keys []uint64) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		buf := make([]byte, 0, keySize)
		for i, v := range keys {
			// bbolt keeps a reference to the key until the tx commits.
			k := encodeKey(buf[:0], v, s.next+uint64(i))
			if err := b.Put(append([]byte(nil), k...), emptyValue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "bbolt: ingest")
	}
	s.next += uint64(len(keys))
	return nil
}

func (s *boltStore) Sorted(dst []uint64) ([]uint64, error) {
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			v, err := decodeKey(k)
			if err != nil {
				return err
			}
			dst = append(dst, v)
		}
		return nil
	})
	return dst, errors.Wrap(err, "bbolt: scan")
}

func (s *boltStore) Close() error {
	return errors.Wrap(s.db.Close(), "bbolt: close")
}

package kvdb

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

type pebbleStore struct {
	db   *pebble.DB
	next uint64
}

func openPebble(dir string) (*pebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{Logger: glogLogger{prefix: "pebble"}})
	if err != nil {
		return nil, errors.Wrap(err, "pebble: open")
	}
	return &pebbleStore{db: db}, nil
}

func (s *pebbleStore) Name() string { return string(Pebble) }

func (s *pebbleStore) Ingest(keys []uint64) error {
	batch := s.db.NewBatch()
	defer batch.Close()
	buf := make([]byte, 0, keySize)
	for i, v := range keys {
		// Set copies the key into the batch.
		if err := batch.Set(encodeKey(buf[:0], v, s.next+uint64(i)), emptyValue, nil); err != nil {
			return errors.Wrap(err, "pebble: ingest")
		}
	}
	if err := batch.Commit(pebble.NoSync); err != nil {
		return errors.Wrap(err, "pebble: commit")
	}
	s.next += uint64(len(keys))
	return nil
}

func (s *pebbleStore) Sorted(dst []uint64) ([]uint64, error) {
	it, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return dst, errors.Wrap(err, "pebble: iter")
	}
	for it.First(); it.Valid(); it.Next() {
		v, err := decodeKey(it.Key())
		if err != nil {
			_ = it.Close()
			return dst, errors.Wrap(err, "pebble: scan")
		}
		dst = append(dst, v)
	}
	return dst, errors.Wrap(it.Close(), "pebble: scan")
}

func (s *pebbleStore) Close() error {
	return errors.Wrap(s.db.Close(), "pebble: close")
}

package kvdb

import (
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"
)

type badgerStore struct {
	db   *badger.DB
	next uint64
}

func openBadger(dir string) (*badgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(glogLogger{prefix: "badger"})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "badger: open")
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) Name() string { return string(Badger) }

func (s *badgerStore) Ingest(keys []uint64) error {
	wb := s.db.NewWriteBatch()
	for i, v := range keys {
		if err := wb.Set(encodeKey(make([]byte, 0, keySize), v, s.next+uint64(i)), emptyValue); err != nil {
			wb.Cancel()
			return errors.Wrap(err, "badger: ingest")
		}
	}
	if err := wb.Flush(); err != nil {
		return errors.Wrap(err, "badger: flush")
	}
	s.next += uint64(len(keys))
	return nil
}

func (s *badgerStore) Sorted(dst []uint64) ([]uint64, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			v, err := decodeKey(it.Item().Key())
			if err != nil {
				return err
			}
			dst = append(dst, v)
		}
		return nil
	})
	return dst, errors.Wrap(err, "badger: scan")
}

func (s *badgerStore) Close() error {
	return errors.Wrap(s.db.Close(), "badger: close")
}

// Package kvdb uses ordered key-value stores as an independent reference
// sort. Keys are written as big-endian (value, sequence) pairs, so the
// store's byte-ordered iteration yields the input multiset in ascending
// order, duplicates included.
package kvdb

import (
	"encoding/binary"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind names a store backend.
type Kind string

const (
	Bbolt  Kind = "bbolt"
	Badger Kind = "badger"
	Pebble Kind = "pebble"
)

// Kinds lists every supported backend.
var Kinds = []Kind{Bbolt, Badger, Pebble}

// ErrUnknownKind is returned by ParseKind and Open.
var ErrUnknownKind = errors.New("kvdb: unknown store kind")

// ParseKind maps a backend name to its Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Store is an ordered multiset of uint64 keys.
type Store interface {
	Name() string
	// Ingest adds keys to the store.
	Ingest(keys []uint64) error
	// Sorted appends every stored key in ascending order to dst.
	Sorted(dst []uint64) ([]uint64, error)
	Close() error
}

// Open creates or opens a store of the given kind under dir.
func Open(kind Kind, dir string) (Store, error) {
	switch kind {
	case Bbolt:
		return openBolt(dir)
	case Badger:
		return openBadger(dir)
	case Pebble:
		return openPebble(dir)
	}
	return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
}

const (
	keySize    = 16
	bucketName = "keys"
)

var emptyValue = []byte{}

// encodeKey packs a key value and its insertion sequence number.
func encodeKey(dst []byte, v, seq uint64) []byte {
	dst = binary.BigEndian.AppendUint64(dst, v)
	return binary.BigEndian.AppendUint64(dst, seq)
}

func decodeKey(b []byte) (uint64, error) {
	if len(b) != keySize {
		return 0, errors.Newf("kvdb: malformed key of %d bytes", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

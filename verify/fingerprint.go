package verify

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"github.com/exascience/pargo/parallel"
	"golang.org/x/exp/constraints"
)

// Digest summarizes a multiset of keys. Two slices holding the same keys in
// any order have the same Digest.
type Digest struct {
	Count uint64
	Sum   uint64
	Xor   uint64
}

func (d Digest) combine(o Digest) Digest {
	return Digest{Count: d.Count + o.Count, Sum: d.Sum + o.Sum, Xor: d.Xor ^ o.Xor}
}

func (d Digest) String() string {
	return fmt.Sprintf("n=%d sum=%016x xor=%016x", d.Count, d.Sum, d.Xor)
}

// Fingerprint returns the multiset digest of keys. The input is cut into
// shards that are hashed in parallel, each into its own Digest, and the
// shard digests are combined at the end.
func Fingerprint[K constraints.Ordered](keys []K) Digest {
	n := len(keys)
	if n < grain {
		return digest(keys)
	}

	// Power of two so the shard count is stable for a given input size.
	shards := 1
	for shards < 2*runtime.GOMAXPROCS(0) && shards*grain < n {
		shards <<= 1
	}
	parts := make([]Digest, shards)
	parallel.Range(0, shards, shards, func(low, high int) {
		for s := low; s < high; s++ {
			parts[s] = digest(keys[s*n/shards : (s+1)*n/shards])
		}
	})

	var d Digest
	for _, p := range parts {
		d = d.combine(p)
	}
	return d
}

func digest[K constraints.Ordered](keys []K) Digest {
	var d Digest
	var buf [8]byte
	for _, k := range keys {
		h := hashKey(k, buf[:0])
		// Second, odd multiplier so that Sum and Xor do not cancel together.
		d.Sum += h * 0x9e3779b97f4a7c15
		d.Xor ^= h
		d.Count++
	}
	return d
}

// hashKey hashes the value of k. Equal keys always hash equally.
func hashKey[K constraints.Ordered](k K, buf []byte) uint64 {
	switch v := any(k).(type) {
	case int:
		return xxhash.Sum64(binary.BigEndian.AppendUint64(buf, uint64(v)))
	case int32:
		return xxhash.Sum64(binary.BigEndian.AppendUint64(buf, uint64(v)))
	case int64:
		return xxhash.Sum64(binary.BigEndian.AppendUint64(buf, uint64(v)))
	case uint:
		return xxhash.Sum64(binary.BigEndian.AppendUint64(buf, uint64(v)))
	case uint32:
		return xxhash.Sum64(binary.BigEndian.AppendUint64(buf, uint64(v)))
	case uint64:
		return xxhash.Sum64(binary.BigEndian.AppendUint64(buf, v))
	case float64:
		if v == 0 {
			v = 0 // -0 == +0
		}
		return xxhash.Sum64(binary.BigEndian.AppendUint64(buf, math.Float64bits(v)))
	case float32:
		if v == 0 {
			v = 0
		}
		return xxhash.Sum64(binary.BigEndian.AppendUint32(buf, math.Float32bits(v)))
	case string:
		return xxhash.Sum64String(v)
	default:
		return xxhash.Sum64String(fmt.Sprint(v))
	}
}

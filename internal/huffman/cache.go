package huffman

import (
	"encoding/binary"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	tinylfu "github.com/dgryski/go-tinylfu"
)

// TableCache rebuilds Canonical tables on first sight of a length vector
// and reuses them for every later Z block that names the same X table, so
// a stream with many small blocks against one recurring table does not
// re-derive the canonical assignment every time. Grounded on
// internal/spinner's tinylfu+slog admission-controlled cache.
type TableCache struct {
	lfu *tinylfu.T[uint64, *Code]
}

// NewTableCache builds a cache admitting up to capacity tables.
func NewTableCache(capacity int) *TableCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &TableCache{
		lfu: tinylfu.New[uint64, *Code](capacity, capacity*10, identityHash,
			tinylfu.OnEvict(func(k uint64, _ *Code) {
				slog.Info("huffman table evicted", "digest", k)
			})),
	}
}

func identityHash(k uint64) uint64 { return k }

// Digest hashes a length vector plus n into the cache key. Lookup does not
// compare a hit's stored lengths against the requested ones, so on a
// digest collision it returns the other vector's table; the caller owns
// deciding whether to trust a hit. Digest is exported for reuse by
// callers that want to assert on it directly.
func Digest(lengths []int, n int) uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	h.Write(buf[:])
	for _, l := range lengths {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(l)))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Lookup returns a cached table for (lengths, n), or ok=false on a miss.
func (c *TableCache) Lookup(lengths []int, n int) (*Code, bool) {
	return c.lfu.Get(Digest(lengths, n))
}

// Store installs code under the digest of (lengths, n).
func (c *TableCache) Store(lengths []int, n int, code *Code) {
	c.lfu.Add(Digest(lengths, n), code)
}

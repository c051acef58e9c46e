package extract

import (
	"github.com/minio/highwayhash"
	"github.com/viant/gather/ref"
)

// cacheKey mirrors inspector/graph/hash.Hash from the teacher: a fixed
// 32-byte key and a HighwayHash-64 digest of the canonical location
// string, so the per-statement def/use cache (§3) is keyed by a
// fixed-size hash rather than by the string itself. The full string is
// still hashed on every get and put.
var cacheHashKey = []byte("gather-defuse-cache-key-32bytes!")

func cacheKey(canonical string) (uint64, error) {
	h, err := highwayhash.New64(cacheHashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write([]byte(canonical)); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// Cache is the per-statement def/use cache (§3): keyed by the canonical
// location string and never invalidated — locations are effectively
// unique per cell parse (§9).
type Cache struct {
	entries map[uint64]ref.DefUse
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: map[uint64]ref.DefUse{}}
}

func (c *Cache) get(canonical string) (ref.DefUse, bool) {
	key, err := cacheKey(canonical)
	if err != nil {
		return ref.DefUse{}, false
	}
	du, ok := c.entries[key]
	return du, ok
}

func (c *Cache) put(canonical string, du ref.DefUse) {
	key, err := cacheKey(canonical)
	if err != nil {
		return
	}
	c.entries[key] = du
}

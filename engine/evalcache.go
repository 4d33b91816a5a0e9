// evalcache.go is a direct-mapped cache of whole-position evaluations,
// the same shape as the pawn hash table but keyed by the full position
// hash instead of just pawns+kings.
package engine

type evalEntry struct {
	lock  uint64
	value int32
}

type evalCache [1 << 16]evalEntry

func (c *evalCache) get(hash uint64) (int32, bool) {
	e := &c[hash&uint64(len(c)-1)]
	return e.value, e.lock == hash
}

func (c *evalCache) put(hash uint64, value int32) {
	c[hash&uint64(len(c)-1)] = evalEntry{hash, value}
}

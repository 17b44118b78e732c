package posterior

import (
	"fmt"
	"sync"
)

// planePool holds a set of named float32 buffer pools, one per plane size
// in use
type planePool struct {
	mu    sync.Mutex
	pools map[string]*planeEntry
}

// planeEntry defines a single buffer pool
type planeEntry struct {
	pool sync.Pool
	size int
}

// newPlanePool returns an empty planePool
func newPlanePool() *planePool {
	return &planePool{
		pools: make(map[string]*planeEntry),
	}
}

// poolName returns the pool name used for planes of rows x cols
func poolName(rows, cols int) string {
	return fmt.Sprintf("%dx%d", cols, rows)
}

// Get returns a []float32 of length rows*cols.  Contents are not cleared as
// every value is overwritten when the field is initialised.
func (b *planePool) Get(rows, cols int) []float32 {

	name := poolName(rows, cols)
	size := rows * cols

	b.mu.Lock()
	entry, ok := b.pools[name]

	if !ok {
		entry = &planeEntry{size: size}
		entry.pool.New = func() any {
			return make([]float32, size)
		}
		b.pools[name] = entry
	}
	b.mu.Unlock()

	return entry.pool.Get().([]float32)
}

// Put returns a buffer to the pool matching its plane size.  Buffers of a
// size never handed out by Get are dropped.
func (b *planePool) Put(rows, cols int, buf []float32) {

	b.mu.Lock()
	entry, ok := b.pools[poolName(rows, cols)]
	b.mu.Unlock()

	if !ok || len(buf) != entry.size {
		return
	}

	entry.pool.Put(buf)
}

package source

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync"
	"sync/atomic"

	"github.com/patrickmn/go-cache"
)

// Stats counts memoized loads.
type Stats struct {
	Hits   int64
	Misses int64
}

// memo caches parsed tables keyed by source path and content hash. Each
// loader owns its own memo, so there is no process-wide cache.
type memo struct {
	mu     sync.Mutex
	c      *cache.Cache
	latest map[string]string // path -> last key, to evict stale entries
	hits   atomic.Int64
	misses atomic.Int64
}

func newMemo() *memo {
	return &memo{c: cache.New(cache.NoExpiration, 0), latest: map[string]string{}}
}

// read returns the file content and its memo key.
func (m *memo) read(path, variant string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	sum := sha256.Sum256(data)
	key := path + "#" + hex.EncodeToString(sum[:])
	if variant != "" {
		key += "#" + variant
	}
	return data, key, nil
}

func (m *memo) get(key string) (any, bool) {
	v, ok := m.c.Get(key)
	if ok {
		m.hits.Add(1)
		return v, true
	}
	m.misses.Add(1)
	return nil, false
}

func (m *memo) put(path, key string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.latest[path]; ok && prev != key {
		m.c.Delete(prev)
	}
	m.latest[path] = key
	m.c.Set(key, v, cache.NoExpiration)
}

func (m *memo) stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load()}
}

func (m *memo) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.Flush()
	m.latest = map[string]string{}
}

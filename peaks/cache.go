// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"fmt"
	"strings"
	"sync"
)

// livenessHead is how many leading max values the degenerate check
// inspects on each channel.
const livenessHead = 10

// Cache memoizes finished peak buffers keyed by
// (file, width, startOffset, displayLength). Normalization flags are
// deliberately not part of the key; see the package docs.
type Cache struct {
	mtx     sync.Mutex
	entries map[string]*Buffer
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Buffer)}
}

func cacheKey(path string, width int, start, length float64) string {
	return fmt.Sprintf("%s|%d|%.4f|%.4f", path, width, start, length)
}

// Get returns the stored buffer for key if it passes the liveness
// check. A degenerate entry (implausibly all-near-zero) is dropped and
// reported as a miss so the caller recomputes; the cache is never
// permanently poisoned.
func (c *Cache) Get(key string) (*Buffer, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	buf, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if isDegenerate(buf) {
		delete(c.entries, key)
		return nil, false
	}
	return buf, true
}

// Put stores buf unconditionally.
func (c *Cache) Put(key string, buf *Buffer) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.entries[key] = buf
}

// Invalidate removes every entry whose key contains substr and returns
// the number of entries dropped. The match is a plain substring test,
// not a structural parse, which is coarse but cheap.
func (c *Cache) Invalidate(substr string) int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	dropped := 0
	for key := range c.entries {
		if strings.Contains(key, substr) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.entries = make(map[string]*Buffer)
}

// Len reports the number of stored entries.
func (c *Cache) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return len(c.entries)
}

// isDegenerate reports whether every channel's first few max values
// are all near zero. Such a buffer is implausible for non-silent
// material and must not be served.
func isDegenerate(buf *Buffer) bool {
	for _, ch := range buf.Channels {
		head := livenessHead
		if head > len(ch.Max) {
			head = len(ch.Max)
		}
		for i := 0; i < head; i++ {
			if abs32(ch.Max[i]) > activeThreshold {
				return false
			}
		}
	}
	return true
}

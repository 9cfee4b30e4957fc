// Package verdictcache memoizes analyzer verdicts by exact input string.
package verdictcache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/linkcheck/internal/link/domain"
)

// Cache is the interface the analyzer consumes.
type Cache interface {
	Get(url string) (domain.Verdict, bool)
	Put(url string, v domain.Verdict)
	Len() int
	Purge()
	Stats() Stats
}

// Stats reports cumulative cache counters.
type Stats struct {
	Capacity  int
	Size      int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type verdictCache struct {
	lru       *lru.Cache[string, domain.Verdict]
	capacity  int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// disabledCache always misses. Returned by New when size <= 0.
type disabledCache struct{}

// New creates an LRU verdict cache holding up to size entries.
func New(size int) (Cache, error) {
	if size <= 0 {
		return disabledCache{}, nil
	}
	c := &verdictCache{capacity: size}
	inner, err := lru.NewWithEvict(size, func(string, domain.Verdict) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	c.lru = inner
	return c, nil
}

func (c *verdictCache) Get(url string) (domain.Verdict, bool) {
	if v, ok := c.lru.Get(url); ok {
		c.hits.Add(1)
		return v, true
	}
	c.misses.Add(1)
	return domain.Verdict{}, false
}

func (c *verdictCache) Put(url string, v domain.Verdict) { c.lru.Add(url, v) }

func (c *verdictCache) Len() int { return c.lru.Len() }

// Purge drops every entry; each dropped entry counts as an eviction.
func (c *verdictCache) Purge() { c.lru.Purge() }

func (c *verdictCache) Stats() Stats {
	return Stats{
		Capacity:  c.capacity,
		Size:      c.lru.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

func (disabledCache) Get(string) (domain.Verdict, bool) { return domain.Verdict{}, false }
func (disabledCache) Put(string, domain.Verdict)        {}
func (disabledCache) Len() int                          { return 0 }
func (disabledCache) Purge()                            {}
func (disabledCache) Stats() Stats                      { return Stats{} }

var (
	_ Cache = (*verdictCache)(nil)
	_ Cache = disabledCache{}
)

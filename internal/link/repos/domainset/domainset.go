// Package domainset holds the exact-domain blacklist as a Bloom-prefiltered set.
// Most analyzed hosts are not blacklisted, so the filter answers the common case
// without touching the map; the map confirms every positive so lookups never
// report a false match.
package domainset

import (
	"sync/atomic"

	bitsbloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/haukened/linkcheck/internal/link/domain"
)

// Set is an immutable exact-domain index. Safe for concurrent use.
type Set struct {
	filter *bitsbloom.BloomFilter
	rules  map[string]domain.Rule

	lookups      atomic.Uint64
	bloomRejects atomic.Uint64
	hits         atomic.Uint64
}

// Stats are cumulative lookup counters.
type Stats struct {
	Size         int
	Lookups      uint64
	BloomRejects uint64
	Hits         uint64
}

// New builds a Set from the domain rules of rs, sizing the filter for fpRate.
func New(rs domain.RuleSet, fpRate float64) *Set {
	rules := rs.Domains()
	m, k := size(uint64(len(rules)), fpRate)
	s := &Set{
		filter: bitsbloom.New(uint(m), uint(k)),
		rules:  make(map[string]domain.Rule, len(rules)),
	}
	for _, r := range rules {
		s.filter.AddString(r.Pattern)
		s.rules[r.Pattern] = r
	}
	return s
}

// Lookup returns the rule for an exact, canonical host.
func (s *Set) Lookup(host string) (domain.Rule, bool) {
	s.lookups.Add(1)
	if !s.filter.TestString(host) {
		s.bloomRejects.Add(1)
		return domain.Rule{}, false
	}
	r, ok := s.rules[host]
	if ok {
		s.hits.Add(1)
	}
	return r, ok
}

// Len returns the number of domains in the set.
func (s *Set) Len() int { return len(s.rules) }

func (s *Set) Stats() Stats {
	return Stats{
		Size:         len(s.rules),
		Lookups:      s.lookups.Load(),
		BloomRejects: s.bloomRejects.Load(),
		Hits:         s.hits.Load(),
	}
}

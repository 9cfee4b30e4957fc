package domainset

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/linkcheck/internal/link/domain"
)

func TestSetLookup(t *testing.T) {
	s := New(domain.DefaultRuleSet(), 0.01)
	assert.Equal(t, 4, s.Len())

	r, ok := s.Lookup("evil-site.com")
	require.True(t, ok)
	assert.Equal(t, "evil-site.com", r.Pattern)
	assert.Equal(t, domain.BuiltinSource, r.Source)

	_, ok = s.Lookup("example.com")
	assert.False(t, ok)

	// subdomains are not exact matches
	_, ok = s.Lookup("www.evil-site.com")
	assert.False(t, ok)

	st := s.Stats()
	assert.Equal(t, uint64(3), st.Lookups)
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, 4, st.Size)
}

func TestSetNoFalseNegatives(t *testing.T) {
	now := time.Now()
	rules := make([]domain.Rule, 0, 5000)
	for i := 0; i < 5000; i++ {
		rules = append(rules, domain.Rule{Pattern: fmt.Sprintf("d%04d.bad.test", i), Kind: domain.RuleDomain, Source: "feed", AddedAt: now})
	}
	rs, err := domain.NewRuleSet(rules...)
	require.NoError(t, err)

	s := New(rs, 0.001)
	for _, r := range rules {
		_, ok := s.Lookup(r.Pattern)
		require.True(t, ok, "missing %s", r.Pattern)
	}
	for i := 0; i < 1000; i++ {
		_, ok := s.Lookup(fmt.Sprintf("d%04d.good.test", i))
		assert.False(t, ok)
	}
}

func TestSetEmpty(t *testing.T) {
	s := New(domain.RuleSet{}, 0)
	_, ok := s.Lookup("anything.com")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

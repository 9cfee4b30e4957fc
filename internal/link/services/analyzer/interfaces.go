package analyzer

import "github.com/haukened/linkcheck/internal/link/domain"

// DomainIndex answers exact-domain membership for canonical hostnames.
type DomainIndex interface {
	Lookup(host string) (domain.Rule, bool)
}

// VerdictCache memoizes verdicts by exact input string.
type VerdictCache interface {
	Get(url string) (domain.Verdict, bool)
	Put(url string, v domain.Verdict)
}

// ruleSetIndex serves domain lookups straight from the RuleSet map.
type ruleSetIndex struct {
	rs domain.RuleSet
}

func (i ruleSetIndex) Lookup(host string) (domain.Rule, bool) {
	return i.rs.Domain(host)
}

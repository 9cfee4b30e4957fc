package domain

import (
	"fmt"
	"time"
)

// BuiltinSource is the Source of the rules compiled into the binary.
const BuiltinSource = "builtin"

var (
	builtinKeywords = []string{
		"phishing",
		"free-gift",
		"account-verify",
		"login-secure",
		"malware",
		"download-now",
		"-free-",
		"win-prize",
	}
	builtinDomains = []string{
		"evil-site.com",
		"malware-download.net",
		"phishing-attempt.org",
		"fake-bank.com",
	}
	builtinTLDs = []string{".xyz", ".tk", ".top", ".gq", ".ml"}
)

// RuleSet is the read-only blacklist consulted by the analyzer. Keywords and TLDs
// keep insertion order because matching is first-match-wins; domains are a set.
// The zero value is an empty rule set.
type RuleSet struct {
	keywords    []Rule
	domains     map[string]Rule
	domainOrder []string
	tlds        []Rule
}

// NewRuleSet builds a RuleSet from rules. Patterns are normalized the same way
// NewRule does; duplicate patterns of the same kind keep the first occurrence.
// Any invalid rule fails the whole set.
func NewRuleSet(rules ...Rule) (RuleSet, error) {
	rs := RuleSet{domains: make(map[string]Rule)}
	seen := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		r.Pattern = normalizePattern(r.Pattern, r.Kind)
		if err := r.Validate(); err != nil {
			return RuleSet{}, fmt.Errorf("rule %d: %w", i, err)
		}
		key := r.Kind.String() + "|" + r.Pattern
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		switch r.Kind {
		case RuleKeyword:
			rs.keywords = append(rs.keywords, r)
		case RuleDomain:
			rs.domains[r.Pattern] = r
			rs.domainOrder = append(rs.domainOrder, r.Pattern)
		case RuleTLD:
			rs.tlds = append(rs.tlds, r)
		}
	}
	return rs, nil
}

// BuiltinRules returns the default keyword, domain and TLD rules stamped with addedAt.
func BuiltinRules(addedAt time.Time) []Rule {
	out := make([]Rule, 0, len(builtinKeywords)+len(builtinDomains)+len(builtinTLDs))
	for _, k := range builtinKeywords {
		out = append(out, Rule{Pattern: k, Kind: RuleKeyword, Source: BuiltinSource, AddedAt: addedAt})
	}
	for _, d := range builtinDomains {
		out = append(out, Rule{Pattern: d, Kind: RuleDomain, Source: BuiltinSource, AddedAt: addedAt})
	}
	for _, t := range builtinTLDs {
		out = append(out, Rule{Pattern: t, Kind: RuleTLD, Source: BuiltinSource, AddedAt: addedAt})
	}
	return out
}

// DefaultRuleSet returns the builtin rule set.
func DefaultRuleSet() RuleSet {
	rs, err := NewRuleSet(BuiltinRules(time.Unix(0, 0).UTC())...)
	if err != nil {
		panic(fmt.Sprintf("builtin rules invalid: %v", err))
	}
	return rs
}

// Keywords returns the keyword rules in match order.
func (rs RuleSet) Keywords() []Rule { return append([]Rule(nil), rs.keywords...) }

// TLDs returns the TLD rules in match order.
func (rs RuleSet) TLDs() []Rule { return append([]Rule(nil), rs.tlds...) }

// Domains returns the domain rules in insertion order.
func (rs RuleSet) Domains() []Rule {
	out := make([]Rule, 0, len(rs.domainOrder))
	for _, name := range rs.domainOrder {
		out = append(out, rs.domains[name])
	}
	return out
}

// Domain looks up an exact domain rule. host must already be canonical.
func (rs RuleSet) Domain(host string) (Rule, bool) {
	r, ok := rs.domains[host]
	return r, ok
}

// RuleCounts summarizes a RuleSet.
type RuleCounts struct {
	Keywords int `json:"keywords"`
	Domains  int `json:"domains"`
	TLDs     int `json:"tlds"`
}

func (rs RuleSet) Counts() RuleCounts {
	return RuleCounts{Keywords: len(rs.keywords), Domains: len(rs.domainOrder), TLDs: len(rs.tlds)}
}

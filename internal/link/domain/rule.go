package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/haukened/linkcheck/internal/link/common/utils"
)

// RuleKind defines how a rule is matched against a URL.
//
// keyword - case-insensitive substring of the whole URL
// domain  - exact hostname equality
// tld     - hostname suffix, e.g. ".xyz"
type RuleKind uint8

const (
	RuleKeyword RuleKind = iota
	RuleDomain
	RuleTLD
)

// String returns a stable string representation of the rule kind.
func (k RuleKind) String() string {
	switch k {
	case RuleKeyword:
		return "keyword"
	case RuleDomain:
		return "domain"
	case RuleTLD:
		return "tld"
	default:
		return fmt.Sprintf("RuleKind(%d)", k)
	}
}

// ParseRuleKind accepts "keyword", "domain" or "tld" (case-insensitive).
func ParseRuleKind(s string) (RuleKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keyword":
		return RuleKeyword, nil
	case "domain":
		return RuleDomain, nil
	case "tld":
		return RuleTLD, nil
	default:
		return 0, fmt.Errorf("unsupported RuleKind: %q", s)
	}
}

func (k RuleKind) MarshalText() ([]byte, error) {
	switch k {
	case RuleKeyword, RuleDomain, RuleTLD:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unsupported RuleKind: %d", uint8(k))
	}
}

// Rule is a single blacklist entry.
//
// Pattern is stored normalized: keywords lower-case, domains in the form
// utils.CanonicalHost produces, TLDs lower-case with exactly one leading dot.
// Source identifies where the rule came from ("builtin", a rules file, a feed
// list).
type Rule struct {
	Pattern string
	Kind    RuleKind
	Source  string
	AddedAt time.Time
}

// NewRule constructs a normalized Rule and validates it.
func NewRule(pattern string, kind RuleKind, source string, addedAt time.Time) (Rule, error) {
	r := Rule{
		Pattern: normalizePattern(pattern, kind),
		Kind:    kind,
		Source:  strings.TrimSpace(source),
		AddedAt: addedAt,
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func NewKeywordRule(keyword, source string, addedAt time.Time) (Rule, error) {
	return NewRule(keyword, RuleKeyword, source, addedAt)
}

func NewDomainRule(name, source string, addedAt time.Time) (Rule, error) {
	return NewRule(name, RuleDomain, source, addedAt)
}

func NewTLDRule(tld, source string, addedAt time.Time) (Rule, error) {
	return NewRule(tld, RuleTLD, source, addedAt)
}

// Validate checks required fields and supported kinds.
func (r Rule) Validate() error {
	if r.Pattern == "" || (r.Kind == RuleTLD && r.Pattern == ".") {
		return fmt.Errorf("rule pattern must not be empty")
	}
	if r.Source == "" {
		return fmt.Errorf("rule source must not be empty")
	}
	if r.AddedAt.IsZero() {
		return fmt.Errorf("rule addedAt must be set")
	}
	switch r.Kind {
	case RuleKeyword:
	case RuleDomain, RuleTLD:
		if strings.ContainsAny(r.Pattern, " \t/") {
			return fmt.Errorf("%s rule %q contains invalid characters", r.Kind, r.Pattern)
		}
	default:
		return fmt.Errorf("unsupported RuleKind: %d", r.Kind)
	}
	return nil
}

func normalizePattern(p string, kind RuleKind) string {
	p = strings.ToLower(strings.TrimSpace(p))
	switch kind {
	case RuleDomain:
		p = utils.CanonicalHost(p)
	case RuleTLD:
		p = strings.TrimLeft(p, ".")
		if p != "" {
			p = "." + p
		}
	}
	return p
}

// Package analyzer is the URL analysis engine: syntactic URL validation,
// blacklist matching and verdict selection. Everything here is pure computation
// over an immutable rule set and safe for concurrent use.
package analyzer

import (
	"github.com/haukened/linkcheck/internal/link/common/log"
	"github.com/haukened/linkcheck/internal/link/common/utils"
	"github.com/haukened/linkcheck/internal/link/domain"
)

// Analyzer classifies URLs against a fixed RuleSet.
type Analyzer struct {
	rules    domain.RuleSet
	keywords []domain.Rule
	tlds     []domain.Rule
	domains  DomainIndex
	cache    VerdictCache
	logger   log.Logger
}

// Options configures an Analyzer. Only Rules is required: Domains defaults to the
// rule set's own domain map, Cache to none and Logger to a no-op logger.
type Options struct {
	Rules   domain.RuleSet
	Domains DomainIndex
	Cache   VerdictCache
	Logger  log.Logger
}

func New(opts Options) *Analyzer {
	a := &Analyzer{
		rules:    opts.Rules,
		keywords: opts.Rules.Keywords(),
		tlds:     opts.Rules.TLDs(),
		domains:  opts.Domains,
		cache:    opts.Cache,
		logger:   opts.Logger,
	}
	if a.domains == nil {
		a.domains = ruleSetIndex{rs: opts.Rules}
	}
	if a.logger == nil {
		a.logger = log.NewNoopLogger()
	}
	return a
}

// Rules returns the rule set the analyzer was built with.
func (a *Analyzer) Rules() domain.RuleSet { return a.rules }

// Analyze validates rawURL, runs the blacklist and maps the outcome to exactly
// one Verdict. The matcher's reason is carried in Verdict.Reason; the message
// stays the fixed unsafe text.
func (a *Analyzer) Analyze(rawURL string) domain.Verdict {
	if a.cache != nil {
		if v, ok := a.cache.Get(rawURL); ok {
			return v
		}
	}
	v := a.analyze(rawURL)
	if a.cache != nil {
		a.cache.Put(rawURL, v)
	}
	return v
}

func (a *Analyzer) analyze(rawURL string) domain.Verdict {
	if !IsValidURL(rawURL) {
		a.logger.Debug(map[string]any{"url": rawURL}, "url_invalid")
		return domain.InvalidURLVerdict()
	}

	dec := a.CheckBlacklist(rawURL)
	fields := map[string]any{"url": rawURL}
	if host, ok := extractHost(rawURL); ok {
		fields["apex"] = utils.RegistrableDomain(host)
	}
	if dec.Blocked {
		fields["kind"] = dec.Kind.String()
		fields["pattern"] = dec.Pattern
		fields["source"] = dec.Source
		a.logger.Debug(fields, "url_blocked")
		return domain.UnsafeVerdict(dec.Reason)
	}
	a.logger.Debug(fields, "url_safe")
	return domain.SafeVerdict()
}

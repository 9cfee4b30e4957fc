package analyzer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/haukened/linkcheck/internal/link/common/utils"
	"github.com/haukened/linkcheck/internal/link/domain"
)

const reasonBlacklistedDomain = "Domain is on our blacklist of known malicious sites"

// CheckBlacklist evaluates rawURL against the rule set. Checks run in a fixed
// order and the first match wins: keywords over the whole lower-cased URL, then
// exact domain, then TLD suffix. rawURL is expected to have passed IsValidURL;
// if the host cannot be extracted the domain and TLD checks are skipped.
func (a *Analyzer) CheckBlacklist(rawURL string) domain.BlockDecision {
	lower := strings.ToLower(rawURL)
	for _, kw := range a.keywords {
		if strings.Contains(lower, kw.Pattern) {
			return blocked(kw, fmt.Sprintf("Suspicious keyword detected: %q", kw.Pattern))
		}
	}

	host, ok := extractHost(rawURL)
	if !ok {
		return domain.EmptyDecision()
	}

	if r, ok := a.domains.Lookup(host); ok {
		return blocked(r, reasonBlacklistedDomain)
	}

	for _, tld := range a.tlds {
		if strings.HasSuffix(host, tld.Pattern) {
			// the reason names the host's final label, which differs from the
			// pattern for multi-label suffixes like ".co.uk"
			return blocked(tld, "Domain uses a potentially suspicious TLD: "+utils.LastLabel(host))
		}
	}
	return domain.EmptyDecision()
}

func blocked(r domain.Rule, reason string) domain.BlockDecision {
	return domain.BlockDecision{
		Blocked: true,
		Kind:    r.Kind,
		Pattern: r.Pattern,
		Source:  r.Source,
		Reason:  reason,
	}
}

// extractHost returns the canonical hostname of rawURL, or false when there is none.
func extractHost(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := utils.CanonicalHost(u.Hostname())
	return host, host != ""
}

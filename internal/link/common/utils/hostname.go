package utils

import (
	"net"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// CanonicalHost returns a hostname in the form used for rule comparison:
// trimmed, lowercased, trailing dots removed and IDNA-encoded to ASCII when the
// name is a valid internationalized domain. IP literals pass through unchanged.
func CanonicalHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	for strings.HasSuffix(host, ".") {
		host = strings.TrimSuffix(host, ".")
	}
	if host == "" {
		return host
	}
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		return ascii
	}
	return host
}

// LastLabel returns the final dot-separated label of host, e.g. "xyz" for
// "shop.random.xyz". A host without dots is returned as-is.
func LastLabel(host string) string {
	if i := strings.LastIndexByte(host, '.'); i >= 0 {
		return host[i+1:]
	}
	return host
}

// RegistrableDomain returns the eTLD+1 of host per the public suffix list, or
// host itself when it has none (IP literals, bare suffixes, single labels).
func RegistrableDomain(host string) string {
	host = CanonicalHost(host)
	if net.ParseIP(host) != nil {
		return host
	}
	apex, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return apex
}

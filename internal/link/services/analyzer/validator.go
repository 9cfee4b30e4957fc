package analyzer

import (
	"net/url"
	"strings"
)

// Schemes that carry an authority and therefore need a host.
var hierarchicalSchemes = map[string]struct{}{
	"http":  {},
	"https": {},
	"ftp":   {},
	"ftps":  {},
	"ws":    {},
	"wss":   {},
}

// Schemes whose payload is an opaque string, e.g. "mailto:someone@example.com".
var opaqueSchemes = map[string]struct{}{
	"mailto": {},
	"tel":    {},
	"sms":    {},
}

// IsValidURL reports whether input is a syntactically valid absolute URL with a
// recognized scheme. Hierarchical schemes need a non-empty host, opaque schemes a
// non-empty payload. Bare domains like "example.com" are not URLs. Purely
// syntactic: nothing is resolved.
func IsValidURL(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	u, err := url.Parse(input)
	if err != nil || u.Scheme == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if _, ok := hierarchicalSchemes[scheme]; ok {
		return u.Opaque == "" && u.Hostname() != ""
	}
	if _, ok := opaqueSchemes[scheme]; ok {
		return u.Opaque != ""
	}
	return false
}

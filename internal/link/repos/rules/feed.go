package rules

import (
	"bufio"
	"io"
	"net"
	"strings"
	"time"

	logpkg "github.com/haukened/linkcheck/internal/link/common/log"
	"github.com/haukened/linkcheck/internal/link/common/utils"
	"github.com/haukened/linkcheck/internal/link/domain"
)

// ParseFeed parses a domain feed into exact domain rules. Each line is either a
// plain domain or an /etc/hosts entry ("0.0.0.0 bad.example other.example"), so
// plain lists, hosts files and mixtures of both are accepted.
//
// Behavior:
//   - '#' starts a comment (whole-line or inline); blank lines are skipped
//   - wildcard tokens ("*.x", ".x") are skipped: rules match hosts exactly
//   - IP literals are skipped, e.g. the "0.0.0.0 0.0.0.0" line of hosts lists
//   - names are canonicalized via utils.CanonicalHost and validated
//   - duplicates keep the first occurrence
//   - every rule is attributed to source and timestamped with now
func ParseFeed(r io.Reader, source string, logger logpkg.Logger, now time.Time) ([]domain.Rule, error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[string]struct{})
	out := make([]domain.Rule, 0, 256)

	logger.Debug(map[string]any{"source": source}, "parse_feed_start")
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripLineBOM(scanner.Text())
		if isEmpty, isComment := classifyLine(line); isEmpty || isComment {
			continue
		}

		fields := strings.Fields(stripInlineComment(line))
		if len(fields) == 0 {
			continue
		}
		tokens := fields[:1]
		if isHostsLine(fields) {
			tokens = fields[1:]
		}

		for _, raw := range tokens {
			if strings.HasPrefix(raw, ".") || strings.Contains(raw, "*") {
				logger.Debug(map[string]any{"line": lineNum, "raw": raw}, "feed_skip_wildcard")
				continue
			}
			name := utils.CanonicalHost(raw)
			if net.ParseIP(name) != nil {
				logger.Debug(map[string]any{"line": lineNum, "raw": raw}, "feed_skip_ip")
				continue
			}
			if !isValidHostname(name) {
				logger.Debug(map[string]any{"line": lineNum, "raw": raw, "name": name}, "feed_skip_invalid")
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			rule, err := domain.NewDomainRule(name, source, now)
			if err != nil {
				logger.Debug(map[string]any{"line": lineNum, "name": name, "error": err.Error()}, "feed_skip_constructor_error")
				continue
			}
			seen[name] = struct{}{}
			out = append(out, rule)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	logger.Debug(map[string]any{"source": source, "count": len(out)}, "parse_feed_done")
	return out, nil
}

package rules

import (
	"net"
	"strings"
	"unicode"
)

// stripLineBOM removes a UTF-8 byte order mark at the start of a line.
func stripLineBOM(line string) string {
	return strings.TrimPrefix(line, "\uFEFF")
}

// classifyLine reports whether a line is blank or a whole-line comment.
func classifyLine(line string) (isEmpty, isComment bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true, false
	}
	return false, strings.HasPrefix(trimmed, "#")
}

// stripInlineComment drops everything from the first '#'.
func stripInlineComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// isHostsLine reports whether fields look like an /etc/hosts entry: an IP address
// followed by at least one hostname.
func isHostsLine(fields []string) bool {
	return len(fields) >= 2 && net.ParseIP(fields[0]) != nil
}

// isValidHostname checks a canonical hostname for feed ingestion:
//   - at most 253 characters
//   - at least two labels
//   - each label 1..63 characters
//   - first label starts with a letter or digit
func isValidHostname(name string) bool {
	if len(name) > 253 {
		return false
	}
	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
	}
	first := []rune(labels[0])
	return unicode.IsLetter(first[0]) || unicode.IsDigit(first[0])
}

// Package render presents verdicts to humans and machines. The analyzer never
// produces markup; all presentation lives here.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/haukened/linkcheck/internal/link/domain"
)

// Icon returns the terminal symbol for a status.
func Icon(s domain.Status) string {
	switch s {
	case domain.StatusSafe:
		return "✔"
	case domain.StatusUnsafe:
		return "✖"
	default:
		return "⚠"
	}
}

// Text writes a verdict as an icon-prefixed title followed by the indented
// message lines and, when present, the reason.
func Text(w io.Writer, v domain.Verdict) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Icon(v.Status), v.Title)
	for _, line := range strings.Split(v.Message, "\n") {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	if v.Reason != "" {
		fmt.Fprintf(&b, "  reason: %s\n", v.Reason)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Result pairs a verdict with the input it was produced for.
type Result struct {
	Input string `json:"input"`
	domain.Verdict
}

// JSON writes results as one JSON object per line.
func JSON(w io.Writer, results ...Result) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

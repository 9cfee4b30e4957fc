package domain

import (
	"fmt"
	"strings"
)

// Status is the classification outcome of one analysis.
type Status uint8

const (
	// StatusWarning is used for input that could not be classified, e.g. a malformed URL.
	StatusWarning Status = iota
	// StatusSafe means no rule matched.
	StatusSafe
	// StatusUnsafe means a blacklist rule matched.
	StatusUnsafe
)

// String returns the lower-case wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusSafe:
		return "safe"
	case StatusUnsafe:
		return "unsafe"
	case StatusWarning:
		return "warning"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// ParseStatus converts "safe", "unsafe" or "warning" (case-insensitive) to a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return StatusSafe, nil
	case "unsafe":
		return StatusUnsafe, nil
	case "warning":
		return StatusWarning, nil
	default:
		return 0, fmt.Errorf("unsupported Status: %q", s)
	}
}

func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusSafe, StatusUnsafe, StatusWarning:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unsupported Status: %d", uint8(s))
	}
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

package domain

// Verdict is the result of analyzing one input. It is a plain value: callers get
// their own copy and derive variants with WithMessage instead of mutating.
type Verdict struct {
	Status  Status `json:"status"`
	Title   string `json:"title"`
	Message string `json:"message"`
	// Reason is the machine-oriented sub-reason, set when a blacklist rule matched.
	Reason string `json:"reason,omitempty"`
}

// Titles and messages of the verdicts produced by the analyzer.
const (
	TitleInvalidURL   = "Invalid URL Format"
	MessageInvalidURL = "The URL you entered does not appear to be properly formatted."

	TitleUnsafe   = "Unsafe Link"
	MessageUnsafe = "This URL matches patterns associated with malicious activities."

	TitleSafe   = "Safe Link"
	MessageSafe = "No suspicious patterns or known threats were detected."
)

// InvalidURLVerdict is returned for input that is not an absolute URL.
func InvalidURLVerdict() Verdict {
	return Verdict{Status: StatusWarning, Title: TitleInvalidURL, Message: MessageInvalidURL}
}

// UnsafeVerdict is returned when a blacklist rule matched; reason carries the
// matcher's explanation.
func UnsafeVerdict(reason string) Verdict {
	return Verdict{Status: StatusUnsafe, Title: TitleUnsafe, Message: MessageUnsafe, Reason: reason}
}

// SafeVerdict is returned when no rule matched.
func SafeVerdict() Verdict {
	return Verdict{Status: StatusSafe, Title: TitleSafe, Message: MessageSafe}
}

// WarningVerdict builds a warning with an arbitrary title and message. Used by the
// QR scanning path for decoder failures and non-URL content.
func WarningVerdict(title, message string) Verdict {
	return Verdict{Status: StatusWarning, Title: title, Message: message}
}

// WithMessage returns a copy of v with the message replaced.
func (v Verdict) WithMessage(message string) Verdict {
	v.Message = message
	return v
}

func (v Verdict) IsSafe() bool    { return v.Status == StatusSafe }
func (v Verdict) IsUnsafe() bool  { return v.Status == StatusUnsafe }
func (v Verdict) IsWarning() bool { return v.Status == StatusWarning }

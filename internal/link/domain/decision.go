package domain

// BlockDecision is the outcome of evaluating a URL against the rule set.
// Pure value type, no external dependencies.
type BlockDecision struct {
	Blocked bool
	Kind    RuleKind // kind of the matched rule, meaningless when not blocked
	Pattern string   // matched keyword, domain or TLD suffix
	Source  string   // source of the matched rule
	Reason  string   // human-readable explanation
}

// IsBlocked is a convenience accessor.
func (d BlockDecision) IsBlocked() bool { return d.Blocked }

// EmptyDecision returns a not-blocked decision.
func EmptyDecision() BlockDecision { return BlockDecision{} }

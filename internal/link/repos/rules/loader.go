// Package rules assembles the process-wide RuleSet at startup from the builtin
// rules, an optional rules file and optional domain feeds.
package rules

import (
	"fmt"
	"os"

	"github.com/haukened/linkcheck/internal/link/common/clock"
	logpkg "github.com/haukened/linkcheck/internal/link/common/log"
	"github.com/haukened/linkcheck/internal/link/domain"
)

// Options selects the rule sources. Sources are merged in order: builtin, File,
// then Lists, so earlier sources win attribution of duplicate patterns.
type Options struct {
	Builtin bool
	File    string
	Lists   []string
	Clock   clock.Clock
	Logger  logpkg.Logger
}

// Load reads every configured source and builds the RuleSet. Unreadable files
// fail the load.
func Load(opts Options) (domain.RuleSet, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNoopLogger()
	}
	now := clk.Now()

	var all []domain.Rule
	if opts.Builtin {
		all = append(all, domain.BuiltinRules(now)...)
	}

	if opts.File != "" {
		fileRules, err := LoadFile(opts.File, now)
		if err != nil {
			return domain.RuleSet{}, err
		}
		logger.Info(map[string]any{"file": opts.File, "rules": len(fileRules)}, "Rules file loaded")
		all = append(all, fileRules...)
	}

	for _, path := range opts.Lists {
		f, err := os.Open(path)
		if err != nil {
			return domain.RuleSet{}, fmt.Errorf("open domain list: %w", err)
		}
		feedRules, err := ParseFeed(f, path, logger, now)
		_ = f.Close()
		if err != nil {
			return domain.RuleSet{}, fmt.Errorf("read domain list %s: %w", path, err)
		}
		logger.Info(map[string]any{"list": path, "domains": len(feedRules)}, "Domain list loaded")
		all = append(all, feedRules...)
	}

	rs, err := domain.NewRuleSet(all...)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("build rule set: %w", err)
	}
	counts := rs.Counts()
	logger.Info(map[string]any{
		"keywords": counts.Keywords,
		"domains":  counts.Domains,
		"tlds":     counts.TLDs,
	}, "Rule set ready")
	return rs, nil
}

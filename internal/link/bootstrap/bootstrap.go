// Package bootstrap wires the analysis pipeline shared by the daemon and the
// CLI: rules, Bloom domain index, verdict cache, analyzer and the QR-capable
// checker.
package bootstrap

import (
	"fmt"

	"github.com/haukened/linkcheck/internal/link/common/clock"
	"github.com/haukened/linkcheck/internal/link/common/log"
	"github.com/haukened/linkcheck/internal/link/config"
	"github.com/haukened/linkcheck/internal/link/gateways/qr"
	"github.com/haukened/linkcheck/internal/link/repos/domainset"
	"github.com/haukened/linkcheck/internal/link/repos/rules"
	"github.com/haukened/linkcheck/internal/link/repos/verdictcache"
	"github.com/haukened/linkcheck/internal/link/services/analyzer"
	"github.com/haukened/linkcheck/internal/link/services/checker"
)

// NewChecker builds a Checker from cfg. A nil clk uses the real clock and a nil
// logger discards output.
func NewChecker(cfg *config.AppConfig, clk clock.Clock, logger log.Logger) (*checker.Checker, error) {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	rs, err := rules.Load(rules.Options{
		Builtin: cfg.BuiltinRules,
		File:    cfg.RulesFile,
		Lists:   cfg.RuleLists,
		Clock:   clk,
		Logger:  logger.With(map[string]any{"component": "rules"}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	cache, err := verdictcache.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create verdict cache: %w", err)
	}
	if cfg.CacheSize == 0 {
		logger.Info(map[string]any{"disabled": true}, "Verdict caching disabled")
	}

	domains := domainset.New(rs, cfg.BloomFPRate)
	logger.Info(map[string]any{
		"domains": domains.Len(),
		"fp_rate": cfg.BloomFPRate,
	}, "Domain index built")

	eng := analyzer.New(analyzer.Options{
		Rules:   rs,
		Domains: domains,
		Cache:   cache,
		Logger:  logger.With(map[string]any{"component": "analyzer"}),
	})

	return checker.New(checker.Options{
		Analyzer: eng,
		Images:   qr.NewImageLoader(0),
		QR:       qr.NewDecoder(),
		Logger:   logger.With(map[string]any{"component": "checker"}),
	}), nil
}

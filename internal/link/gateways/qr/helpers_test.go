package qr

import (
	"github.com/haukened/linkcheck/internal/link/domain"
	"github.com/haukened/linkcheck/internal/link/services/analyzer"
)

func analyzerForTest() *analyzer.Analyzer {
	return analyzer.New(analyzer.Options{Rules: domain.DefaultRuleSet()})
}

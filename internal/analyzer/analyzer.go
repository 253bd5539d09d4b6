// Package analyzer ranks weekly grocery promotions and selects a bounded,
// category-balanced top-N list.
//
// The pipeline is: dedupe -> exclusion filter -> per-deal scoring and
// priority detection -> category-balanced selection. Every step works on
// defensive shallow copies; the caller's slice and the records in it are
// never mutated, so one input list may be shared by several analyzers
// running concurrently.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/blackwell-systems/dealrank/internal/rules"
)

// Analyzer scores deal records against an immutable rule set, optionally
// restricted to a single retailer.
type Analyzer struct {
	retailerFilter string
	rules          *rules.Rules

	// Word-boundary matchers for store-brand phrases, compiled once to
	// reduce false positives like "Target" inside "Targeted Nutrition".
	storeBrandPatterns []*regexp.Regexp
}

// New creates an Analyzer. retailerFilter may be empty to accept all
// retailers; r may be nil to use the built-in default rules.
func New(retailerFilter string, r *rules.Rules) *Analyzer {
	if r == nil {
		r = rules.Default()
	}

	a := &Analyzer{
		retailerFilter: retailerFilter,
		rules:          r,
	}

	for _, b := range r.StoreBrands {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		a.storeBrandPatterns = append(a.storeBrandPatterns,
			regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(b)+`\b`))
	}

	return a
}

// Rules returns the rule set the analyzer was constructed with.
func (a *Analyzer) Rules() *rules.Rules {
	return a.rules
}

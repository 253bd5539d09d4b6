package analyzer

import (
	"strings"

	"github.com/blackwell-systems/dealrank/internal/deal"
)

// IsPriorityDeal reports whether a deal qualifies as an auto-include staple.
// Qualification is based on the normalized per-pound price: the deal must
// resolve to a "lb" unit price, and some priority rule (in configured order)
// must match on category, price ceiling, and keywords.
func (a *Analyzer) IsPriorityDeal(d deal.Record) bool {
	nameL := strings.ToLower(d.ProductName)

	upAmount, upUnit, _ := a.ComputeUnitPrice(d)
	if upUnit != "lb" || upAmount == nil {
		return false
	}

	for _, rule := range a.rules.PriorityRules {
		if !containsString(rule.Categories, d.Category) {
			continue
		}
		if *upAmount > rule.MaxPricePerLb {
			continue
		}
		if !containsAny(nameL, rule.Keywords) {
			continue
		}
		if containsAny(nameL, rule.ExcludeKeywords) {
			continue
		}
		return true
	}

	return false
}

// PriorityBonus returns the bonus score of the first rule whose keywords
// match a qualifying deal, or 0.
func (a *Analyzer) PriorityBonus(d deal.Record) int {
	if !a.IsPriorityDeal(d) {
		return 0
	}

	nameL := strings.ToLower(d.ProductName)
	for _, rule := range a.rules.PriorityRules {
		if containsAny(nameL, rule.Keywords) && !containsAny(nameL, rule.ExcludeKeywords) {
			return rule.BonusScore
		}
	}
	return 0
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

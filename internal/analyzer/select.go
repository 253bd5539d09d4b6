package analyzer

import (
	"math"
	"sort"

	"github.com/blackwell-systems/dealrank/internal/deal"
)

// ExcludedDeal pairs a dropped record with the reason it was dropped.
type ExcludedDeal struct {
	Deal   deal.Record
	Reason Reason
}

// tieBreakKey totally orders deals: higher score first, priority first,
// higher savings percent first, then lower unit price and lower raw price.
// Lower key sorts first.
type tieBreakKey [5]float64

func scoredTieBreakKey(s deal.Scored) tieBreakKey {
	savings := -1.0
	if s.Price.SavingsPercent != nil {
		savings = *s.Price.SavingsPercent
	}
	unitPrice := math.Inf(1)
	if s.UnitPriceAmount != nil {
		unitPrice = *s.UnitPriceAmount
	}
	amount := math.Inf(1)
	if s.Price.Amount != nil {
		amount = *s.Price.Amount
	}
	priority := 0.0
	if s.IsPriority {
		priority = 1.0
	}
	return tieBreakKey{
		-float64(s.EngagementScore),
		-priority,
		-savings,
		unitPrice,
		amount,
	}
}

func keyLess(a, b tieBreakKey) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// sortByTieBreak sorts deals best-first. The sort is stable so that input
// order decides between fully tied deals, keeping analysis idempotent.
func sortByTieBreak(deals []deal.Scored) {
	sort.SliceStable(deals, func(i, j int) bool {
		return keyLess(scoredTieBreakKey(deals[i]), scoredTieBreakKey(deals[j]))
	})
}

func truncateDeals(deals []deal.Scored, n int) []deal.Scored {
	if n < 0 {
		n = 0
	}
	if len(deals) > n {
		return deals[:n]
	}
	return deals
}

// Analyze scores all deals and returns the top N, category-balanced when
// balancing is enabled. Priority deals are always included while they fit
// within the overall bound. balanceOverride overrides the configured
// balancing toggle for this call; nil keeps the configured value.
//
// The input slice and its records are never mutated.
func (a *Analyzer) Analyze(deals []deal.Record, topN int, balanceOverride *bool) []deal.Scored {
	deals = a.Dedupe(deals)
	if len(deals) == 0 {
		return nil
	}

	balance := a.rules.BalanceCategories
	if balanceOverride != nil {
		balance = *balanceOverride
	}

	var scoredDeals, priorityDeals []deal.Scored
	for _, d := range deals {
		eff := applyMultibuyOverride(d)
		if a.ShouldExclude(eff) {
			continue
		}

		s := deal.Scored{Record: eff}
		s.EngagementScore = a.TotalScore(eff)
		s.CategoryGroup = CategoryGroup(d)
		s.IsPriority = a.IsPriorityDeal(d)
		s.UnitPriceAmount, s.UnitPriceUnit, s.UnitPriceDisplay = a.ComputeUnitPrice(d)

		if s.IsPriority {
			priorityDeals = append(priorityDeals, s)
		} else {
			scoredDeals = append(scoredDeals, s)
		}
	}

	if len(scoredDeals) == 0 && len(priorityDeals) == 0 {
		return nil
	}

	sortByTieBreak(scoredDeals)
	sortByTieBreak(priorityDeals)

	// Priority deals come first, but as a group they are still capped to
	// the overall bound.
	topDeals := make([]deal.Scored, len(priorityDeals))
	copy(topDeals, priorityDeals)

	remainingSlots := topN - len(topDeals)
	if remainingSlots <= 0 {
		return truncateDeals(topDeals, topN)
	}

	if !balance {
		topDeals = append(topDeals, scoredDeals[:min(remainingSlots, len(scoredDeals))]...)
		return truncateDeals(topDeals, topN)
	}

	added := a.balancedSelection(scoredDeals, remainingSlots)

	topDeals = append(topDeals, added...)
	sortByTieBreak(topDeals)
	return truncateDeals(topDeals, topN)
}

// balancedSelection picks remainingSlots deals across the three category
// buckets: proportional base allocation, then a two-phase greedy correction
// that adds the best unallocated candidate while under target and removes
// the worst allocated one while over.
func (a *Analyzer) balancedSelection(scoredDeals []deal.Scored, remainingSlots int) []deal.Scored {
	categories := []string{deal.GroupMeatSeafood, deal.GroupProduce, deal.GroupSnacksOther}

	groups := make(map[string][]deal.Scored, len(categories))
	for _, s := range scoredDeals {
		groups[s.CategoryGroup] = append(groups[s.CategoryGroup], s)
	}

	available := make(map[string]int, len(categories))
	totalAvailable := 0
	for _, c := range categories {
		available[c] = len(groups[c])
		totalAvailable += available[c]
	}

	allocations := make(map[string]int, len(categories))
	if totalAvailable > 0 {
		for _, c := range categories {
			if available[c] > 0 {
				allocations[c] = int(math.Round(float64(remainingSlots) * float64(available[c]) / float64(totalAvailable)))
			}
		}
		for _, c := range categories {
			allocations[c] = min(allocations[c], available[c])
		}

		allocated := func() int {
			total := 0
			for _, c := range categories {
				total += allocations[c]
			}
			return total
		}

		// Under target: pull in the single best next-ranked candidate from
		// any bucket with spare inventory.
		for allocated() < remainingSlots {
			bestCat := ""
			var bestKey tieBreakKey
			for _, c := range categories {
				if allocations[c] >= available[c] {
					continue
				}
				key := scoredTieBreakKey(groups[c][allocations[c]])
				if bestCat == "" || keyLess(key, bestKey) {
					bestCat = c
					bestKey = key
				}
			}
			if bestCat == "" {
				break
			}
			allocations[bestCat]++
		}

		// Over target: drop the single weakest currently-allocated deal.
		for allocated() > remainingSlots {
			worstCat := ""
			var worstKey tieBreakKey
			for _, c := range categories {
				if allocations[c] == 0 {
					continue
				}
				key := scoredTieBreakKey(groups[c][allocations[c]-1])
				if worstCat == "" || keyLess(worstKey, key) {
					worstCat = c
					worstKey = key
				}
			}
			if worstCat == "" {
				break
			}
			allocations[worstCat]--
		}
	}

	var added []deal.Scored
	for _, c := range categories {
		added = append(added, groups[c][:allocations[c]]...)
	}

	// Backfill from overall tie-break order if the buckets could not fill
	// the remaining slots.
	if len(added) < remainingSlots {
		addedIDs := make(map[string]struct{}, len(added))
		for i := range added {
			addedIDs[added[i].IDKey()] = struct{}{}
		}
		for i := range scoredDeals {
			if len(added) >= remainingSlots {
				break
			}
			if _, ok := addedIDs[scoredDeals[i].IDKey()]; ok {
				continue
			}
			added = append(added, scoredDeals[i])
		}
	}

	return added
}

// AnalyzeWithExclusions behaves like Analyze but also reports every deal
// dropped by the exclusion filter together with its reason code.
func (a *Analyzer) AnalyzeWithExclusions(deals []deal.Record, topN int, balanceOverride *bool) ([]deal.Scored, []ExcludedDeal) {
	deals = a.Dedupe(deals)

	var kept []deal.Record
	var excluded []ExcludedDeal
	for _, d := range deals {
		if reason := a.ExclusionReason(d); reason != "" {
			excluded = append(excluded, ExcludedDeal{Deal: d, Reason: reason})
		} else {
			kept = append(kept, d)
		}
	}

	return a.Analyze(kept, topN, balanceOverride), excluded
}

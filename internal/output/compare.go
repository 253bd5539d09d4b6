package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blackwell-systems/dealrank/internal/analyzer"
	"github.com/blackwell-systems/dealrank/internal/deal"
	"github.com/blackwell-systems/dealrank/internal/rules"
)

// RenderComparison renders the top deals per retailer, one section each.
// Retailers are analyzed independently: each gets its own analyzer sharing
// the same rule set, so a shared input slice is safe.
func RenderComparison(allDeals []deal.Record, retailers []string, topN int, r *rules.Rules) string {
	var sb strings.Builder
	sb.WriteString("MULTI-RETAILER COMPARISON\n")
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString("\n\n")

	for _, retailer := range retailers {
		a := analyzer.New(retailer, r)

		var retailerDeals []deal.Record
		for _, d := range allDeals {
			if d.Retailer == retailer {
				retailerDeals = append(retailerDeals, d)
			}
		}

		topDeals := a.Analyze(retailerDeals, topN, nil)
		if len(topDeals) == 0 {
			continue
		}

		sb.WriteString(colorize(colorCyan, retailer) + "\n")
		for i, d := range topDeals {
			sb.WriteString(fmt.Sprintf("  %d. %s - %s\n", i+1, d.ProductName, d.Price.Display))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Retailers returns the sorted set of retailer names present in the deals.
// Records without a retailer group under "Unknown".
func Retailers(deals []deal.Record) []string {
	seen := make(map[string]struct{})
	for _, d := range deals {
		r := d.Retailer
		if r == "" {
			r = "Unknown"
		}
		seen[r] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

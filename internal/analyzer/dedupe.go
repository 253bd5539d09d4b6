package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackwell-systems/dealrank/internal/deal"
)

// dedupeKey builds the composite identity used to collapse duplicate
// records: retailer, product, category, price display/amount/unit, size,
// and flyer page. Fields not in the key (brand, notes, ...) do not make two
// records distinct.
func dedupeKey(d deal.Record) string {
	amount := "nil"
	if d.Price.Amount != nil {
		amount = strconv.FormatFloat(*d.Price.Amount, 'g', -1, 64)
	}

	parts := []string{
		strings.ToUpper(strings.TrimSpace(d.Retailer)),
		strings.ToLower(strings.TrimSpace(d.ProductName)),
		strings.ToUpper(strings.TrimSpace(d.Category)),
		strings.TrimSpace(d.Price.Display),
		amount,
		d.Price.Unit,
		strings.ToLower(strings.TrimSpace(d.SizeQuantity)),
		fmt.Sprint(d.Page),
	}
	return strings.Join(parts, "\x1f")
}

// Dedupe removes duplicate records, keeping the first occurrence by input
// order. With deduplication disabled in the rules it returns the input
// slice unchanged.
func (a *Analyzer) Dedupe(deals []deal.Record) []deal.Record {
	if !a.rules.Dedupe {
		return deals
	}

	seen := make(map[string]struct{}, len(deals))
	out := make([]deal.Record, 0, len(deals))
	for _, d := range deals {
		key := dedupeKey(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}

package analyzer

import (
	"math"
	"strings"

	"github.com/blackwell-systems/dealrank/internal/deal"
)

// Reason identifies why a deal was dropped before scoring.
type Reason string

// Exclusion reasons, in evaluation order. The first matching check wins, so
// a deal in an alcohol category with no price reports the missing price, not
// the category.
const (
	ReasonMissingPriceAmount  Reason = "missing_price_amount"
	ReasonNegativePrice       Reason = "invalid_negative_price"
	ReasonCategoryAlcohol     Reason = "excluded_category_alcohol"
	ReasonSupplement          Reason = "excluded_supplement"
	ReasonStoreBrand          Reason = "excluded_store_brand"
	ReasonProductKeyword      Reason = "excluded_product_keyword"
	ReasonFilteredByRetailer  Reason = "filtered_out_by_retailer"
)

var alcoholTokens = []string{"ALCOHOL", "BEER", "WINE", "SPIRITS"}

// ExclusionReason returns the reason a deal would be dropped, or "" to keep
// it. Checks run in a fixed order; see the Reason constants.
func (a *Analyzer) ExclusionReason(d deal.Record) Reason {
	amount := d.Price.Amount
	if amount == nil || math.IsNaN(*amount) {
		return ReasonMissingPriceAmount
	}
	if *amount < 0 {
		return ReasonNegativePrice
	}

	category := d.Category
	catU := strings.ToUpper(category)

	for _, excluded := range a.rules.ExcludedCategories {
		if category == excluded {
			return ReasonCategoryAlcohol
		}
	}
	for _, token := range alcoholTokens {
		// Catches variants like "Beer & Wine".
		if strings.Contains(catU, token) {
			return ReasonCategoryAlcohol
		}
	}

	if strings.Contains(catU, "HEALTH") || strings.Contains(catU, "BEAUTY") {
		nameL := strings.ToLower(d.ProductName)
		for _, kw := range a.rules.SupplementKeywords {
			if strings.Contains(nameL, kw) {
				return ReasonSupplement
			}
		}
	}

	combined := strings.ToLower(d.ProductName + " " + d.Brand)

	// Store brands: prefer exact brand matches, then phrase matches on
	// word boundaries.
	brandL := strings.ToLower(strings.TrimSpace(d.Brand))
	if brandL != "" {
		for _, b := range a.rules.StoreBrands {
			if brandL == strings.ToLower(b) {
				return ReasonStoreBrand
			}
		}
	}
	for _, pat := range a.storeBrandPatterns {
		if pat.MatchString(combined) {
			return ReasonStoreBrand
		}
	}

	// Excluded products only apply inside likely relevant categories to
	// avoid accidental brand/name collisions.
	nameL := strings.ToLower(d.ProductName)
	for _, excl := range a.rules.ExcludedProducts {
		if strings.Contains(nameL, excl) {
			if strings.Contains(catU, "MEAT") || strings.Contains(catU, "DELI") || strings.Contains(catU, "SEAFOOD") {
				return ReasonProductKeyword
			}
			break
		}
	}

	if a.retailerFilter != "" && d.Retailer != a.retailerFilter {
		return ReasonFilteredByRetailer
	}

	return ""
}

// ShouldExclude reports whether the deal would be dropped.
func (a *Analyzer) ShouldExclude(d deal.Record) bool {
	return a.ExclusionReason(d) != ""
}

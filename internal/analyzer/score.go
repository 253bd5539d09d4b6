package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/blackwell-systems/dealrank/internal/deal"
)

// Round-number price endings that read as deals ("$4.99", "$10.99").
var viralPriceEndings = []string{"0.99", "1.99", "2.49", "2.99", "4.99", "9.99"}

// Popular snack brands that outperform the generic premium check.
var popularSnackBrands = []string{"doritos", "hershey", "outshine", "ben & jerry", "reese's"}

var interestingKeywords = []string{
	"cotton candy", "dekopon", "sumo", "dumpling", "truffle",
	"artisan", "heritage", "heirloom", "specialty", "gourmet",
}

var kidKeywords = []string{
	"chicken nugget", "drumstick", "popsicle", "fruit bar",
	"cookie", "mac and cheese", "pizza", "lunchable",
}

var mealKeywords = []string{"entrée", "meal", "dinner", "ready to eat", "prepared"}

var partyKeywords = []string{"party", "entertaining", "celebration", "game day"}

var regionalBrands = []string{"boar's head", "tillamook", "kerrygold", "dave's killer"}

// effectivePrice returns the best price basis for scoring: the comparable
// unit price when one resolves (e.g. $4.99 per 3lb scores as $1.66/lb),
// otherwise the raw amount.
func (a *Analyzer) effectivePrice(d deal.Record) float64 {
	eff := applyMultibuyOverride(d)

	var amount float64
	if eff.Price.Amount != nil {
		amount = *eff.Price.Amount
	}

	up, upUnit, _ := a.ComputeUnitPrice(eff)
	if up == nil || upUnit == "" {
		return amount
	}
	return *up
}

// ViralPricingScore scores price-point appeal, 0-30. Tiered by effective
// price, with bonuses for round-number endings, multibuy promotions, and
// deep savings, clamped to the band.
func (a *Analyzer) ViralPricingScore(d deal.Record) int {
	score := 0
	priceEff := a.effectivePrice(d)

	switch {
	case priceEff < 1.00:
		score += 30
	case priceEff <= 2.99:
		score += 20
	case priceEff <= 4.99:
		score += 10
	}

	// Round-number bonus is based on the displayed amount, not the
	// normalized unit price.
	if raw := d.Price.Amount; raw != nil && !math.IsNaN(*raw) {
		priceStr := fmt.Sprintf("%.2f", *raw)
		for _, ending := range viralPriceEndings {
			if strings.HasSuffix(priceStr, ending) {
				score += 8
				break
			}
		}
	}

	if d.Price.IsMultibuy {
		score += 15
	}

	if pct := d.Price.SavingsPercent; pct != nil {
		if *pct >= 50 {
			score += 12
		} else if *pct >= 30 {
			score += 8
		}
	}

	if score > 30 {
		score = 30
	}
	return score
}

// DiscountDepth scores savings depth, 0-20, mapping roughly 10% -> 2,
// 25% -> 8, 40% -> 14, 60% -> 20. When no savings percent is present it is
// inferred from the original price.
func (a *Analyzer) DiscountDepth(d deal.Record) int {
	if pct := d.Price.SavingsPercent; pct != nil {
		return discountDepthFromPercent(*pct)
	}

	orig := d.Price.OriginalPrice
	amt := d.Price.Amount
	if orig != nil && amt != nil && *orig > 0 && *amt >= 0 {
		inferred := (*orig - *amt) / *orig * 100.0
		return discountDepthFromPercent(inferred)
	}

	return 0
}

func discountDepthFromPercent(pct float64) int {
	score := int(math.Round((pct - 5) * 20 / 55))
	if score < 0 {
		return 0
	}
	if score > 20 {
		return 20
	}
	return score
}

// CategoryWeight looks up the engagement weight for the deal's exact
// category string; unknown categories score 5.
func (a *Analyzer) CategoryWeight(d deal.Record) int {
	if w, ok := a.rules.CategoryWeights[d.Category]; ok {
		return w
	}
	return 5
}

// PremiumValue scores perceived product quality. This is a fixed-priority
// decision list, not a best-of comparison: the first matching rule wins even
// when a later rule would score differently.
func (a *Analyzer) PremiumValue(d deal.Record) int {
	combined := strings.ToLower(d.ProductName + " " + d.SpecialNotes + " " + d.Brand)

	if containsAny(combined, a.rules.PremiumKeywords) {
		return 25
	}
	if containsAny(combined, popularSnackBrands) {
		return 20
	}
	if strings.Contains(combined, "organic") {
		return 18
	}
	if pct := d.Price.SavingsPercent; pct != nil && *pct >= 30 {
		return 15
	}
	return 5
}

// SocialAppeal scores shareability. Same fixed-priority structure as
// PremiumValue; the ordering is deliberate and does not follow score
// magnitude (party's 15 sits after kid's 12 and meal's 10).
func (a *Analyzer) SocialAppeal(d deal.Record) int {
	combined := strings.ToLower(d.ProductName + " " + d.SpecialNotes)

	if containsAny(combined, a.rules.ViralKeywords) {
		return 20
	}
	if containsAny(combined, interestingKeywords) {
		return 18
	}
	if containsAny(combined, kidKeywords) {
		return 12
	}
	if containsAny(combined, mealKeywords) {
		return 10
	}
	if containsAny(combined, partyKeywords) {
		return 15
	}
	return 5
}

// BrandRecognition scores name-brand pull: major national brands 10,
// regional favorites 8, everything else 5.
func (a *Analyzer) BrandRecognition(d deal.Record) int {
	combined := strings.ToLower(d.ProductName + " " + d.Brand)

	if containsAny(combined, a.rules.MajorBrands) {
		return 10
	}
	if containsAny(combined, regionalBrands) {
		return 8
	}
	return 5
}

// TotalScore sums the six weighted sub-scores plus the priority bonus.
// The overall total is uncapped.
func (a *Analyzer) TotalScore(d deal.Record) int {
	score := 0
	score += a.ViralPricingScore(d)
	score += a.DiscountDepth(d)
	score += a.CategoryWeight(d)
	score += a.PremiumValue(d)
	score += a.SocialAppeal(d)
	score += a.BrandRecognition(d)
	score += a.PriorityBonus(d)
	return score
}

// CategoryGroup maps a deal's category text into one of the three coarse
// buckets used for balanced selection.
func CategoryGroup(d deal.Record) string {
	category := strings.ToUpper(d.Category)
	if strings.Contains(category, "MEAT") || strings.Contains(category, "SEAFOOD") || strings.Contains(category, "DELI") {
		return deal.GroupMeatSeafood
	}
	if strings.Contains(category, "PRODUCE") {
		return deal.GroupProduce
	}
	return deal.GroupSnacksOther
}

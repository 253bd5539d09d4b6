// Package output renders analyzer results for the terminal.
//
// This package includes:
//   - The ranked top-deals report with optional per-component score breakdowns
//   - The excluded-deals listing with reason codes
//   - The multi-retailer comparison report
//
// All rendering uses plain text with ANSI color codes; color is gated on
// stdout being a TTY and NO_COLOR being unset.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/dealrank/internal/analyzer"
	"github.com/blackwell-systems/dealrank/internal/deal"
)

// ANSI color codes for rank and priority display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderTopDeals renders the ranked deal report. With showDetails the score
// and its per-component breakdown are printed under each deal; the breakdown
// is recomputed through the analyzer so it always matches the total.
func RenderTopDeals(a *analyzer.Analyzer, deals []deal.Scored, showDetails bool) string {
	if len(deals) == 0 {
		return "No deals found matching criteria.\n"
	}

	retailer := deals[0].Retailer
	if retailer == "" {
		retailer = "Unknown"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("TOP %d DEALS - %s\n", len(deals), retailer))
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString("\n\n")

	for i, d := range deals {
		marker := ""
		if d.IsPriority {
			marker = colorize(colorYellow, "★ ")
		}

		product := d.ProductName
		if product == "" {
			product = "Unknown Product"
		}

		sb.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, marker, product))

		priceDisplay := d.Price.Display
		if priceDisplay == "" {
			priceDisplay = "Price N/A"
		}
		sb.WriteString("   " + colorize(colorGreen, priceDisplay))

		// Derived unit price, for explainability, when it adds information.
		if d.UnitPriceDisplay != "" && !strings.Contains(priceDisplay, d.UnitPriceDisplay) {
			sb.WriteString(fmt.Sprintf("  (≈ %s)", d.UnitPriceDisplay))
		}

		if details := dealDetails(d); len(details) > 0 {
			sb.WriteString(" | " + strings.Join(details, " | "))
		}
		sb.WriteString("\n")

		if showDetails {
			sb.WriteString(fmt.Sprintf("   Score: %d pts | %s", d.EngagementScore, orNA(d.Category)))
			if d.IsPriority {
				sb.WriteString(" | " + colorize(colorYellow, "PRIORITY DEAL"))
			}
			sb.WriteString("\n")
			sb.WriteString("   " + scoreBreakdown(a, d) + "\n")
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// dealDetails collects the secondary attributes worth a report line:
// size, raw unit, container format, and multibuy quantity.
func dealDetails(d deal.Scored) []string {
	var details []string

	if sq := d.SizeQuantity; sq != "" && sq != "null" && sq != "None" {
		details = append(details, "Size: "+sq)
	}
	if unit := d.Price.Unit; unit != "" && !strings.Contains(d.Price.Display, unit) {
		details = append(details, "Unit: "+unit)
	}

	format := d.Format
	if format == "" {
		format = d.ContainerType
	}
	if format != "" && format != "null" && format != "None" {
		details = append(details, "Format: "+format)
	}

	if d.QuantityRequired != nil && *d.QuantityRequired > 0 {
		details = append(details, fmt.Sprintf("Qty Required: %d", *d.QuantityRequired))
	}

	return details
}

func scoreBreakdown(a *analyzer.Analyzer, d deal.Scored) string {
	breakdown := fmt.Sprintf("Breakdown: Price=%d | Discount=%d | Category=%d | Premium=%d | Social=%d | Brand=%d",
		a.ViralPricingScore(d.Record),
		a.DiscountDepth(d.Record),
		a.CategoryWeight(d.Record),
		a.PremiumValue(d.Record),
		a.SocialAppeal(d.Record),
		a.BrandRecognition(d.Record))

	if bonus := a.PriorityBonus(d.Record); bonus > 0 {
		breakdown += fmt.Sprintf(" | Priority=%d", bonus)
	}
	return breakdown
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// RenderExcluded lists deals dropped by the exclusion filter with their
// reason codes, capped at limit entries (0 means no cap).
func RenderExcluded(excluded []analyzer.ExcludedDeal, limit int) string {
	if len(excluded) == 0 {
		return "No deals were excluded.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("EXCLUDED DEALS (%d)\n", len(excluded)))
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString("\n")

	for i, e := range excluded {
		if limit > 0 && i >= limit {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(excluded)-limit))
			break
		}
		name := e.Deal.ProductName
		if name == "" {
			name = "(unknown)"
		}
		sb.WriteString(fmt.Sprintf("- %s [%s] -> %s\n", name, e.Deal.Retailer, colorize(colorGray, string(e.Reason))))
	}

	return sb.String()
}

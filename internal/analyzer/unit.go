package analyzer

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/blackwell-systems/dealrank/internal/deal"
)

// Unit kinds produced by NormalizeUnit. The canonical kind is the comparison
// basis: weight prices compare per pound, volume prices per fluid ounce.
const (
	UnitLb      = "lb"
	UnitOz      = "oz"
	UnitFlOz    = "floz"
	UnitEach    = "each"
	UnitCount   = "count"
	UnitUnknown = "unknown"
)

var numberRE = regexp.MustCompile(`\d+(?:\.\d+)?`)

// UnitInfo is the result of normalizing a unit/display string pair.
// Qty is only meaningful when HasQty is true.
type UnitInfo struct {
	Kind      string
	Qty       float64
	HasQty    bool
	Canonical string
}

func unknownUnit() UnitInfo {
	return UnitInfo{Kind: UnitUnknown, Canonical: UnitUnknown}
}

// parseDisplayUnit infers a unit kind from the price display text when the
// unit field itself is absent ("$2.99 per lb", "$0.50/oz", ...).
func parseDisplayUnit(display string) string {
	d := strings.ToLower(display)
	if strings.Contains(d, "per lb") || strings.Contains(d, "/lb") {
		return UnitLb
	}
	if strings.Contains(d, "per pound") {
		return UnitLb
	}
	if strings.Contains(d, "per fl oz") || strings.Contains(d, "per floz") || strings.Contains(d, "/fl oz") {
		return UnitFlOz
	}
	if strings.Contains(d, "per oz") || strings.Contains(d, "/oz") {
		return UnitOz
	}
	if strings.Contains(d, "each") && strings.Contains(d, "per") {
		return UnitEach
	}
	return ""
}

// NormalizeUnit parses a unit string (optionally falling back to the display
// text) into a kind, a quantity in that kind, and the canonical comparison
// kind. Examples: "3lb" -> (lb, 3, lb); "16floz" -> (floz, 16, floz);
// "oz" quantities canonicalize to lb for weight comparison.
func NormalizeUnit(unit, display string) UnitInfo {
	u := strings.ToLower(strings.TrimSpace(unit))

	if u == "" && display != "" {
		u = parseDisplayUnit(display)
	}
	if u == "" {
		return unknownUnit()
	}

	switch u {
	case "lb", "lbs", "pound", "pounds":
		return UnitInfo{Kind: UnitLb, Qty: 1, HasQty: true, Canonical: UnitLb}
	}

	// Numeric-prefixed tokens like "3lb", "16floz", "4count".
	if loc := numberRE.FindStringIndex(u); loc != nil && loc[0] == 0 {
		num, _ := strconv.ParseFloat(u[loc[0]:loc[1]], 64)
		tail := strings.ReplaceAll(strings.TrimSpace(u[loc[1]:]), " ", "")

		switch tail {
		case "lb", "lbs", "pound", "pounds":
			return UnitInfo{Kind: UnitLb, Qty: num, HasQty: true, Canonical: UnitLb}
		case "oz":
			return UnitInfo{Kind: UnitOz, Qty: num, HasQty: true, Canonical: UnitLb}
		case "floz", "fl.oz", "fl-oz":
			return UnitInfo{Kind: UnitFlOz, Qty: num, HasQty: true, Canonical: UnitFlOz}
		case "count", "ct":
			return UnitInfo{Kind: UnitCount, Qty: num, HasQty: true, Canonical: UnitCount}
		}
	}

	// Non-numeric tokens that may still carry a trailing quantity.
	if strings.Contains(u, "floz") || strings.Contains(u, "fl oz") {
		return unitWithSearchedQty(UnitFlOz, u)
	}
	if strings.Contains(u, "count") || u == "ct" {
		return unitWithSearchedQty(UnitCount, u)
	}

	switch u {
	case "each", "ea":
		return UnitInfo{Kind: UnitEach, Qty: 1, HasQty: true, Canonical: UnitEach}
	case "pack", "bag", "pkg":
		// Effectively "each" unless a count can be extracted elsewhere.
		return UnitInfo{Kind: UnitEach, Qty: 1, HasQty: true, Canonical: UnitEach}
	}

	return unknownUnit()
}

func unitWithSearchedQty(kind, u string) UnitInfo {
	if m := numberRE.FindString(u); m != "" {
		qty, _ := strconv.ParseFloat(m, 64)
		return UnitInfo{Kind: kind, Qty: qty, HasQty: true, Canonical: kind}
	}
	return UnitInfo{Kind: kind, Canonical: kind}
}

// ComputeUnitPrice computes a comparable unit price for a deal when the unit
// can be normalized. Multibuy promotions are first resolved to their per-unit
// cost. It returns (nil, "", "") when the price is missing or the unit cannot
// be resolved; the caller falls back to the raw amount.
func (a *Analyzer) ComputeUnitPrice(d deal.Record) (*float64, string, string) {
	d = applyMultibuyOverride(d)

	amount := d.Price.Amount
	if amount == nil || math.IsNaN(*amount) {
		return nil, "", ""
	}

	info := NormalizeUnit(d.Price.Unit, d.Price.Display)

	switch info.Canonical {
	case UnitLb:
		if info.Kind == UnitLb && info.HasQty && info.Qty > 0 {
			up := *amount / info.Qty
			return &up, "lb", fmt.Sprintf("$%.2f/lb", up)
		}
		if info.Kind == UnitOz && info.HasQty && info.Qty > 0 {
			up := *amount / (info.Qty / 16.0)
			return &up, "lb", fmt.Sprintf("$%.2f/lb", up)
		}
		if info.Kind == UnitLb {
			// "lb" inferred but no quantity: the amount already is per pound.
			up := *amount
			return &up, "lb", fmt.Sprintf("$%.2f/lb", up)
		}

	case UnitFlOz:
		if info.HasQty && info.Qty > 0 {
			up := *amount / info.Qty
			return &up, "fl oz", fmt.Sprintf("$%.2f/fl oz", up)
		}
		return nil, "", ""

	case UnitEach, UnitCount:
		if info.HasQty && info.Qty > 0 {
			up := *amount / info.Qty
			if info.Canonical == UnitEach {
				return &up, "each", fmt.Sprintf("$%.2f ea", up)
			}
			return &up, "count", fmt.Sprintf("$%.2f/count", up)
		}
		if info.Canonical == UnitEach {
			up := *amount
			return &up, "each", fmt.Sprintf("$%.2f ea", up)
		}
	}

	return nil, "", ""
}

// extractMultibuyDetails pulls the per-unit cost, required quantity, total
// cost, and format string out of a multibuy details block. Each field is
// coerced independently; a field that will not coerce is simply absent.
func extractMultibuyDetails(d deal.Record) (perUnit *float64, qtyRequired *int, total *float64, format string) {
	if !d.Price.IsMultibuy || d.Price.MultibuyDetails == nil {
		return nil, nil, nil, ""
	}

	details := d.Price.MultibuyDetails
	perUnit = coerceFloat(details["per_unit_cost"])
	qtyRequired = coerceInt(details["quantity_required"])
	total = coerceFloat(details["total_cost"])
	format = coerceString(details["format"])
	return perUnit, qtyRequired, total, format
}

// applyMultibuyOverride returns a shallow-copied deal whose price reflects
// the multibuy per-unit cost, for scoring and display. When the per-unit cost
// or required quantity cannot be resolved the original deal is returned
// unchanged.
func applyMultibuyOverride(d deal.Record) deal.Record {
	perUnit, qtyRequired, total, format := extractMultibuyDetails(d)
	if perUnit == nil || qtyRequired == nil {
		return d
	}

	// d is already a copy; Price is a value field, so mutating it here
	// never reaches the caller's record.
	unit := d.Price.Unit
	if unit == "" {
		unit = "ea"
	}
	unitDisp := unit
	if l := strings.ToLower(unit); l == "ea" || l == "each" {
		unitDisp = "ea"
	}

	d.Price.Amount = perUnit
	d.Price.Display = fmt.Sprintf("$%.2f %s", *perUnit, unitDisp)

	// Surface multibuy metadata at top level for the report and email
	// renderers.
	d.QuantityRequired = qtyRequired
	if format != "" && d.Format == "" {
		d.Format = format
	}
	d.MultibuyTotalCost = total
	d.MultibuyFormat = format
	return d
}

// coerceFloat mirrors the loose numeric coercion of extraction payloads:
// JSON numbers, integral types, and numeric strings all resolve.
func coerceFloat(v any) *float64 {
	switch x := v.(type) {
	case float64:
		f := x
		return &f
	case float32:
		f := float64(x)
		return &f
	case int:
		f := float64(x)
		return &f
	case int64:
		f := float64(x)
		return &f
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return &f
		}
	}
	return nil
}

// coerceInt accepts integral values, floats (truncated), and integer strings.
func coerceInt(v any) *int {
	switch x := v.(type) {
	case int:
		n := x
		return &n
	case int64:
		n := int(x)
		return &n
	case float64:
		n := int(x)
		return &n
	case json.Number:
		if i, err := strconv.Atoi(x.String()); err == nil {
			return &i
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return &i
		}
	}
	return nil
}

func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

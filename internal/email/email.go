// Package email generates the weekly deals HTML email by substituting
// analyzer output into a static markup template: greeting and week metadata,
// retailer chips, a cross-retailer staple price comparison table, and one
// deal-card section per retailer.
package email

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/dealrank/internal/analyzer"
	"github.com/blackwell-systems/dealrank/internal/deal"
	"github.com/blackwell-systems/dealrank/internal/rules"
)

// retailerLogos maps retailer identifiers to hosted logo images.
var retailerLogos = map[string]string{
	"VONS":            "https://upload.wikimedia.org/wikipedia/commons/0/0e/Vons_logo.svg",
	"RALPHS":          "https://upload.wikimedia.org/wikipedia/commons/thumb/9/96/Ralphs.svg/1024px-Ralphs.svg.png",
	"SMART_AND_FINAL": "https://play-lh.googleusercontent.com/fCa9uxi0baNL8iFHqLSWP8B3kti5OZL0sbDoCSZkQOg1e2OzRuKbkVjGlHlNl1j1h_0",
	"HEB":             "https://upload.wikimedia.org/wikipedia/commons/3/35/HEB_logo.svg",
	"SPROUTS":         "https://upload.wikimedia.org/wikipedia/commons/0/0d/Sprouts_Farmers_Market_logo.svg",
	"AMAZON_FRESH":    "https://upload.wikimedia.org/wikipedia/commons/a/a9/Amazon_logo.svg",
	"WHOLE_FOODS":     "https://upload.wikimedia.org/wikipedia/commons/3/3e/Whole_Foods_Market_logo.svg",
}

const defaultDealImage = "https://link.gelsons.com/custloads/760906850/md_1640571.jpg"

// Template substitution points.
var (
	weekOfRE   = regexp.MustCompile(`Week of <strong>[^<]*</strong>`)
	zipRE      = regexp.MustCompile(`ZIP <strong>[^<]*</strong>`)
	chipsRE    = regexp.MustCompile(`(?s)<p class="chip-body">[^<]*</p>\s*</td>\s*<td class="chip" width="25%">\s*<p class="chip-title">Deals picked</p>\s*<p class="chip-body">[^<]*</p>`)
	compareRE  = regexp.MustCompile(`(?s)<table class="compare-table\b.*?</table>`)
	sectionsRE = regexp.MustCompile(`(?s)<!-- ================= RETAILER 1:.*?-->\s*<div class="retailer-section\b.*?<!-- Closing copy -->`)
)

// Options carries the personalization fields for one generated email.
type Options struct {
	TopNPerRetailer int
	DisplayName     string
	Email           string
	ZipCode         string
	WeekOf          string // "Jan 02" style; defaults to today
}

// Build fills the provided template HTML with analyzed deals. Each retailer
// present in the input is analyzed independently and rendered as its own
// section; r may be nil for the default rules.
func Build(allDeals []deal.Record, templateHTML string, r *rules.Rules, opts Options) string {
	if opts.DisplayName == "" {
		opts.DisplayName = "there"
	}
	if opts.WeekOf == "" {
		opts.WeekOf = time.Now().Format("Jan 02")
	}
	if opts.TopNPerRetailer <= 0 {
		opts.TopNPerRetailer = 6
	}

	retailers := retailerSet(allDeals)

	byRetailerRaw := make(map[string][]deal.Record, len(retailers))
	for _, d := range allDeals {
		name := retailerName(d)
		byRetailerRaw[name] = append(byRetailerRaw[name], d)
	}

	byRetailerTop := make(map[string][]deal.Scored, len(retailers))
	dealsPicked := 0
	for _, retailer := range retailers {
		a := analyzer.New(retailer, r)
		top := a.Analyze(byRetailerRaw[retailer], opts.TopNPerRetailer, nil)
		byRetailerTop[retailer] = top
		dealsPicked += len(top)
	}

	out := templateHTML

	out = weekOfRE.ReplaceAllString(out,
		"Week of <strong>"+html.EscapeString(opts.WeekOf)+"</strong>")
	if opts.ZipCode != "" {
		out = zipRE.ReplaceAllString(out,
			"ZIP <strong>"+html.EscapeString(opts.ZipCode)+"</strong>")
	}

	out = strings.ReplaceAll(out, "${displayName}", html.EscapeString(opts.DisplayName))
	out = strings.ReplaceAll(out, "${encodeURIComponent(email)}", html.EscapeString(opts.Email))

	chips := make([]string, 0, len(retailers))
	for _, retailer := range retailers {
		chips = append(chips, titleCase(retailer))
	}
	out = chipsRE.ReplaceAllString(out, fmt.Sprintf(
		`<p class="chip-body">%s</p></td>
                      <td class="chip" width="25%%">
                        <p class="chip-title">Deals picked</p>
                        <p class="chip-body">%d deals</p>`,
		html.EscapeString(strings.Join(chips, " • ")), dealsPicked))

	out = compareRE.ReplaceAllLiteralString(out, renderCompareTable(retailers, byRetailerRaw, r))

	sections := make([]string, 0, len(retailers))
	for i, retailer := range retailers {
		sections = append(sections,
			renderRetailerSection(retailer, byRetailerTop[retailer], i+1, len(retailers), opts.TopNPerRetailer))
	}
	out = sectionsRE.ReplaceAllLiteralString(out,
		strings.Join(sections, "\n")+"\n\n                <!-- Closing copy -->")

	return out
}

func retailerName(d deal.Record) string {
	if d.Retailer == "" {
		return "Unknown"
	}
	return d.Retailer
}

func retailerSet(deals []deal.Record) []string {
	seen := make(map[string]struct{})
	for _, d := range deals {
		seen[retailerName(d)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// titleCase turns "SMART_AND_FINAL" into "Smart And Final" for display.
func titleCase(retailer string) string {
	words := strings.Fields(strings.ReplaceAll(retailer, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func formatSaveLine(d deal.Scored) string {
	if sa := d.Price.SavingsAmount; sa != nil && *sa > 0 {
		return fmt.Sprintf("Save $%.2f", *sa)
	}
	if sp := d.Price.SavingsPercent; sp != nil && *sp > 0 {
		return fmt.Sprintf("Save %d%%", int(math.Round(*sp)))
	}
	// Multibuy formats ("2 for $5") double as a save-style callout.
	if (d.Price.IsMultibuy || d.MultibuyFormat != "") && d.MultibuyFormat != "" {
		return html.EscapeString(d.MultibuyFormat)
	}
	return ""
}

func formatRegularPrice(d deal.Scored) string {
	if orig := d.Price.OriginalPrice; orig != nil && *orig > 0 {
		return fmt.Sprintf("$%.2f", *orig)
	}
	return ""
}

func formatSalePrice(d deal.Scored) string {
	if d.Price.Display != "" {
		return html.EscapeString(d.Price.Display)
	}
	if d.Price.Amount != nil {
		return fmt.Sprintf("$%.2f", *d.Price.Amount)
	}
	return "Price N/A"
}

func dealSizeText(d deal.Scored) string {
	if d.SizeQuantity != "" {
		return html.EscapeString(d.SizeQuantity)
	}
	if d.UnitPriceDisplay != "" {
		return html.EscapeString(d.UnitPriceDisplay)
	}
	return ""
}

func renderDealCard(d deal.Scored) string {
	name := d.ProductName
	if name == "" {
		name = "Unknown"
	}
	nameEsc := html.EscapeString(name)

	sizeText := dealSizeText(d)
	if d.QuantityRequired != nil && *d.QuantityRequired > 0 {
		if sizeText != "" {
			sizeText = fmt.Sprintf("%s • Qty %d", sizeText, *d.QuantityRequired)
		} else {
			sizeText = fmt.Sprintf("Qty %d", *d.QuantityRequired)
		}
	}

	saveHTML := `<p class="deal-save" style="color:#ffffff00; margin:0 0 6px 0;">&nbsp;</p>`
	if saveLine := formatSaveLine(d); saveLine != "" {
		saveHTML = `<p class="deal-save">` + saveLine + `</p>`
	}

	regularHTML := ""
	if regular := formatRegularPrice(d); regular != "" {
		regularHTML = `<span class="deal-regular">` + regular + `</span>`
	}

	return fmt.Sprintf(`
      <div class="deal-card">
        <div class="deal-image-wrapper">
          <img src="%s" alt="%s" />
        </div>
        <p class="deal-name">%s</p>
        <p class="deal-size">%s</p>
        %s
        <p class="deal-prices">
          %s
          <span class="deal-sale">%s</span>
        </p>
      </div>
    `, defaultDealImage, nameEsc, nameEsc, sizeText, saveHTML, regularHTML, formatSalePrice(d))
}

func renderRetailerSection(retailer string, deals []deal.Scored, idx, total, topN int) string {
	logo := retailerLogos[retailer]
	if logo == "" {
		logo = retailerLogos[strings.ToUpper(retailer)]
	}
	subtitle := fmt.Sprintf("Top %d deals this week at %s.", min(topN, len(deals)), titleCase(retailer))

	// 2-up card grid.
	var rows []string
	for i := 0; i < len(deals); i += 2 {
		left := renderDealCard(deals[i])
		right := ""
		if i+1 < len(deals) {
			right = renderDealCard(deals[i+1])
		}
		rows = append(rows, fmt.Sprintf(`
              <tr>
                <td class="deal-column">%s</td>
                <td class="deal-column">%s</td>
              </tr>
            `, left, right))
	}

	logoHTML := fmt.Sprintf(`<span style="font-weight:800;">%s</span>`, html.EscapeString(retailer))
	if logo != "" {
		logoHTML = fmt.Sprintf(`<img src="%s" alt="%s logo" class="retailer-logo" />`, logo, html.EscapeString(retailer))
	}

	return fmt.Sprintf(`
      <div class="retailer-section">
        <div class="retailer-tag">Retailer %d of %d</div>
        <h2 class="section-header">
          %s
        </h2>
        <p class="section-subtitle">%s</p>

        <table class="deal-grid" role="presentation" cellpadding="0" cellspacing="0" border="0">
          %s
        </table>
      </div>
    `, idx, total, logoHTML, html.EscapeString(subtitle), strings.Join(rows, "\n"))
}

// staple is one row of the cross-retailer comparison table.
type staple struct {
	label    string
	keywords []string
	perLb    bool
}

var staples = []staple{
	{"Chicken (per lb)", []string{"chicken breast", "chicken thighs", "chicken thigh", "chicken"}, true},
	{"Beef (per lb)", []string{"ground beef", "steak", "sirloin", "ribeye", "beef"}, true},
	{"Apples", []string{"apple", "apples"}, false},
}

// bestPriceForKeywords finds the lowest comparable price among deals whose
// product name mentions one of the keywords, preferring normalized per-lb
// and per-fl-oz prices over package prices.
func bestPriceForKeywords(a *analyzer.Analyzer, deals []deal.Record, keywords []string) *float64 {
	var best *float64
	for _, d := range deals {
		name := strings.ToLower(d.ProductName)
		matched := false
		for _, k := range keywords {
			if strings.Contains(name, k) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		var amt *float64
		up, upUnit, _ := a.ComputeUnitPrice(d)
		if up != nil && (upUnit == "lb" || upUnit == "fl oz") {
			amt = up
		} else if d.Price.Amount != nil {
			amt = d.Price.Amount
		}
		if amt == nil {
			continue
		}
		if best == nil || *amt < *best {
			best = amt
		}
	}
	return best
}

func renderCompareTable(retailers []string, byRetailer map[string][]deal.Record, r *rules.Rules) string {
	// An unfiltered analyzer; only unit-price math is used here.
	a := analyzer.New("", r)

	var headerCells strings.Builder
	for _, retailer := range retailers {
		headerCells.WriteString(`<th style="text-align:right;">` + html.EscapeString(titleCase(retailer)) + `</th>`)
	}

	var bodyRows strings.Builder
	for _, st := range staples {
		var cells strings.Builder
		for _, retailer := range retailers {
			best := bestPriceForKeywords(a, byRetailer[retailer], st.keywords)
			if best == nil {
				cells.WriteString(`<td class="price">—</td>`)
				continue
			}
			suffix := ""
			if st.perLb {
				suffix = "/lb"
			}
			cells.WriteString(fmt.Sprintf(`<td class="price">$%.2f%s</td>`, *best, suffix))
		}
		bodyRows.WriteString(fmt.Sprintf("<tr><td>%s</td>%s</tr>", html.EscapeString(st.label), cells.String()))
	}

	return fmt.Sprintf(`
      <table class="compare-table" role="presentation" cellpadding="0" cellspacing="0" border="0">
        <tr>
          <th>Item</th>
          %s
        </tr>
        %s
      </table>
    `, headerCells.String(), bodyRows.String())
}

// Package deal defines the deal record data model shared by the analyzer,
// report renderers, and email generator.
//
// Records arrive from an external extraction pipeline as JSON. Every field a
// retailer flyer may or may not carry is optional: numeric fields are
// pointers so that null survives decoding, and the analyzer treats a nil
// amount as "no usable price" rather than an error.
package deal

import "fmt"

// Price holds the promotional price block of a deal record.
type Price struct {
	Amount          *float64       `json:"amount"`
	Unit            string         `json:"unit"`
	Display         string         `json:"display"`
	IsMultibuy      bool           `json:"is_multibuy"`
	MultibuyDetails map[string]any `json:"multibuy_details,omitempty"`
	OriginalPrice   *float64       `json:"original_price,omitempty"`
	SavingsAmount   *float64       `json:"savings_amount,omitempty"`
	SavingsPercent  *float64       `json:"savings_percent,omitempty"`
}

// Record is one retailer's promotional listing for the current cycle.
// The analyzer never mutates a Record it is given; derived values are
// written to shallow copies only.
type Record struct {
	ID                   any            `json:"deal_id,omitempty"`
	Page                 any            `json:"page,omitempty"`
	Retailer             string         `json:"retailer,omitempty"`
	ProductName          string         `json:"product_name,omitempty"`
	Brand                string         `json:"brand,omitempty"`
	Category             string         `json:"category,omitempty"`
	Price                Price          `json:"price"`
	SizeQuantity         string         `json:"size_quantity,omitempty"`
	ContainerType        string         `json:"container_type,omitempty"`
	Conditions           map[string]any `json:"conditions,omitempty"`
	PromotionType        string         `json:"promotion_type,omitempty"`
	PromotionGroupID     string         `json:"promotion_group_id,omitempty"`
	SpecialNotes         string         `json:"special_notes,omitempty"`
	ExtractionConfidence string         `json:"extraction_confidence,omitempty"`
	UncertaintyFlags     []string       `json:"uncertainty_flags,omitempty"`

	// Surfaced by the multibuy override on derived copies; never present on
	// raw input unless the extractor already resolved them.
	QuantityRequired  *int     `json:"quantity_required,omitempty"`
	Format            string   `json:"format,omitempty"`
	MultibuyTotalCost *float64 `json:"multibuy_total_cost,omitempty"`
	MultibuyFormat    string   `json:"multibuy_format,omitempty"`
}

// Category groups used for balanced top-N selection.
const (
	GroupMeatSeafood = "Meat/Seafood"
	GroupProduce     = "Produce"
	GroupSnacksOther = "Snacks/Other"
)

// Scored is a Record plus the fields derived during analysis.
type Scored struct {
	Record

	EngagementScore  int      `json:"engagement_score"`
	CategoryGroup    string   `json:"category_group"`
	IsPriority       bool     `json:"is_priority"`
	UnitPriceAmount  *float64 `json:"unit_price_amount,omitempty"`
	UnitPriceUnit    string   `json:"unit_price_unit,omitempty"`
	UnitPriceDisplay string   `json:"unit_price_display,omitempty"`
}

// IDKey returns a comparable string form of the record identifier, used to
// avoid re-adding the same deal during selection backfill. Records without an
// identifier all share the same key, matching first-one-wins behavior.
func (r *Record) IDKey() string {
	return fmt.Sprint(r.ID)
}

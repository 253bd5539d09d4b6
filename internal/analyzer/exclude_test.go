package analyzer

import (
	"testing"

	"github.com/blackwell-systems/dealrank/internal/deal"
)

func TestExclusionReason(t *testing.T) {
	tests := []struct {
		name string
		deal deal.Record
		want Reason
	}{
		{
			name: "missing price amount",
			deal: deal.Record{ProductName: "apples", Category: "PRODUCE"},
			want: ReasonMissingPriceAmount,
		},
		{
			name: "negative price",
			deal: deal.Record{ProductName: "apples", Category: "PRODUCE", Price: deal.Price{Amount: fptr(-1)}},
			want: ReasonNegativePrice,
		},
		{
			name: "exact excluded category",
			deal: deal.Record{ProductName: "lager", Category: "Beer, Wine & Spirits", Price: deal.Price{Amount: fptr(9.99)}},
			want: ReasonCategoryAlcohol,
		},
		{
			name: "alcohol token in category variant",
			deal: deal.Record{ProductName: "lager", Category: "Beer & Wine", Price: deal.Price{Amount: fptr(9.99)}},
			want: ReasonCategoryAlcohol,
		},
		{
			name: "supplement in health category",
			deal: deal.Record{ProductName: "Daily Multivitamin Gummies", Category: "HEALTH_BEAUTY", Price: deal.Price{Amount: fptr(12.99)}},
			want: ReasonSupplement,
		},
		{
			name: "supplement keyword outside health category kept",
			deal: deal.Record{ProductName: "vitamin water", Category: "BEVERAGES", Price: deal.Price{Amount: fptr(1.99)}},
			want: "",
		},
		{
			name: "store brand exact match",
			deal: deal.Record{ProductName: "Whole Milk", Brand: "Kirkland", Category: "DAIRY_EGGS", Price: deal.Price{Amount: fptr(3.49)}},
			want: ReasonStoreBrand,
		},
		{
			name: "store brand phrase in product name",
			deal: deal.Record{ProductName: "H-E-B Whole Milk", Category: "DAIRY_EGGS", Price: deal.Price{Amount: fptr(3.49)}},
			want: ReasonStoreBrand,
		},
		{
			name: "store brand requires word boundary",
			deal: deal.Record{ProductName: "Targeted Relief Balm", Category: "Personal Care", Price: deal.Price{Amount: fptr(7.99)}},
			want: "",
		},
		{
			name: "excluded product keyword in meat category",
			deal: deal.Record{ProductName: "Beef Hot Dogs", Category: "MEAT", Price: deal.Price{Amount: fptr(4.99)}},
			want: ReasonProductKeyword,
		},
		{
			name: "excluded product keyword outside meat category kept",
			deal: deal.Record{ProductName: "Hot Dog Buns", Category: "BAKERY", Price: deal.Price{Amount: fptr(2.99)}},
			want: "",
		},
		{
			name: "clean deal kept",
			deal: deal.Record{ProductName: "Honeycrisp Apples", Category: "PRODUCE", Price: deal.Price{Amount: fptr(1.99)}},
			want: "",
		},
	}

	a := New("", nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.ExclusionReason(tt.deal)
			if got != tt.want {
				t.Errorf("expected reason %q, got %q", tt.want, got)
			}
		})
	}
}

// The price check runs before the category check: an alcohol deal with no
// price reports the missing price.
func TestExclusionReason_PriceCheckPrecedesCategory(t *testing.T) {
	a := New("", nil)
	d := deal.Record{ProductName: "lager", Category: "Beer & Wine"}

	if got := a.ExclusionReason(d); got != ReasonMissingPriceAmount {
		t.Errorf("expected missing_price_amount, got %q", got)
	}
}

func TestExclusionReason_RetailerFilter(t *testing.T) {
	a := New("HEB", nil)

	other := deal.Record{ProductName: "Honeycrisp Apples", Category: "PRODUCE", Retailer: "SPROUTS", Price: deal.Price{Amount: fptr(1.99)}}
	if got := a.ExclusionReason(other); got != ReasonFilteredByRetailer {
		t.Errorf("expected filtered_out_by_retailer, got %q", got)
	}

	match := deal.Record{ProductName: "Honeycrisp Apples", Category: "PRODUCE", Retailer: "HEB", Price: deal.Price{Amount: fptr(1.99)}}
	if got := a.ExclusionReason(match); got != "" {
		t.Errorf("expected deal to be kept, got %q", got)
	}
}

package analyzer

import (
	"testing"

	"github.com/blackwell-systems/dealrank/internal/deal"
)

func record(id, name, category string, amount, savings float64) deal.Record {
	return deal.Record{
		ID:          id,
		ProductName: name,
		Category:    category,
		Price:       deal.Price{Amount: fptr(amount), SavingsPercent: fptr(savings)},
	}
}

func ids(deals []deal.Scored) []string {
	out := make([]string, len(deals))
	for i := range deals {
		out[i] = deals[i].IDKey()
	}
	return out
}

func groupCounts(deals []deal.Scored) map[string]int {
	counts := make(map[string]int)
	for i := range deals {
		counts[deals[i].CategoryGroup]++
	}
	return counts
}

func TestScoredTieBreakKey_Ordering(t *testing.T) {
	base := deal.Scored{Record: deal.Record{Price: deal.Price{Amount: fptr(5.00), SavingsPercent: fptr(20.0)}}}
	base.EngagementScore = 80
	base.UnitPriceAmount = fptr(2.00)

	tests := []struct {
		name   string
		mutate func(*deal.Scored)
	}{
		{
			name:   "higher score wins",
			mutate: func(s *deal.Scored) { s.EngagementScore = 81 },
		},
		{
			name:   "priority breaks score tie",
			mutate: func(s *deal.Scored) { s.IsPriority = true },
		},
		{
			name:   "higher savings breaks tie",
			mutate: func(s *deal.Scored) { s.Price.SavingsPercent = fptr(25.0) },
		},
		{
			name:   "lower unit price breaks tie",
			mutate: func(s *deal.Scored) { s.UnitPriceAmount = fptr(1.50) },
		},
		{
			name:   "lower raw price breaks tie",
			mutate: func(s *deal.Scored) { s.Price.Amount = fptr(4.00) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			better := base
			tt.mutate(&better)
			if !keyLess(scoredTieBreakKey(better), scoredTieBreakKey(base)) {
				t.Errorf("expected mutated deal to sort before base")
			}
			if keyLess(scoredTieBreakKey(base), scoredTieBreakKey(better)) {
				t.Errorf("expected base not to sort before mutated deal")
			}
		})
	}
}

func TestScoredTieBreakKey_MissingFields(t *testing.T) {
	// Missing savings sorts as -1 and missing prices as +Inf, so a deal that
	// has the data always beats an otherwise identical deal that lacks it.
	with := deal.Scored{Record: deal.Record{Price: deal.Price{Amount: fptr(5.00), SavingsPercent: fptr(0.0)}}}
	with.UnitPriceAmount = fptr(2.00)
	without := deal.Scored{Record: deal.Record{Price: deal.Price{Amount: fptr(5.00)}}}
	without.UnitPriceAmount = fptr(2.00)

	if !keyLess(scoredTieBreakKey(with), scoredTieBreakKey(without)) {
		t.Errorf("expected explicit 0%% savings to sort before missing savings")
	}
}

func TestAnalyze_OrdersByScoreAndTruncates(t *testing.T) {
	a := New("", nil)
	deals := []deal.Record{
		record("low", "Canned Corn", "GROCERY", 5.00, 10),
		record("high", "Canned Corn", "GROCERY", 5.00, 60),
		record("mid", "Canned Corn", "GROCERY", 5.00, 35),
	}
	// Names collide but sizes differ so dedupe keeps all three.
	deals[0].SizeQuantity = "15 oz"
	deals[1].SizeQuantity = "12 oz"
	deals[2].SizeQuantity = "10 oz"

	got := a.Analyze(deals, 2, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(got))
	}
	if got[0].IDKey() != "high" || got[1].IDKey() != "mid" {
		t.Errorf("expected [high mid], got %v", ids(got))
	}
	if got[0].EngagementScore <= got[1].EngagementScore {
		t.Errorf("expected descending scores, got %d then %d", got[0].EngagementScore, got[1].EngagementScore)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := New("", nil)
	deals := []deal.Record{
		record("a", "Canned Corn", "GROCERY", 5.00, 40),
		record("b", "Frozen Peas", "FROZEN", 5.00, 40),
		record("c", "Paper Towels", "HOUSEHOLD", 5.00, 40),
	}

	first := a.Analyze(deals, 3, nil)
	second := a.Analyze(deals, 3, nil)
	if len(first) != len(second) {
		t.Fatalf("expected same length, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].IDKey() != second[i].IDKey() {
			t.Errorf("run order diverged at %d: %v vs %v", i, ids(first), ids(second))
		}
	}
}

func TestAnalyze_PriorityDealAlwaysIncluded(t *testing.T) {
	a := New("", nil)
	deals := []deal.Record{
		{ID: "chicken", ProductName: "Chicken Breast", Category: "MEAT",
			Price: deal.Price{Amount: fptr(2.99), Unit: "lb"}},
		{ID: "chips1", ProductName: "Doritos Party Pack", Category: "SNACKS", Brand: "Doritos",
			Price: deal.Price{Amount: fptr(0.99), SavingsPercent: fptr(60.0)}},
		{ID: "chips2", ProductName: "Lays Party Size", Category: "SNACKS", Brand: "Lays",
			Price: deal.Price{Amount: fptr(0.99), SavingsPercent: fptr(60.0)}},
	}

	got := a.Analyze(deals, 2, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(got))
	}
	found := false
	for i := range got {
		if got[i].IDKey() == "chicken" {
			found = true
			if !got[i].IsPriority {
				t.Errorf("expected chicken deal to be flagged priority")
			}
		}
	}
	if !found {
		t.Errorf("expected priority deal in results, got %v", ids(got))
	}
}

func TestAnalyze_PriorityDealsCappedToTopN(t *testing.T) {
	a := New("", nil)
	deals := []deal.Record{
		{ID: "p1", ProductName: "Chicken Breast", Category: "MEAT",
			Price: deal.Price{Amount: fptr(1.99), Unit: "lb"}},
		{ID: "p2", ProductName: "Ground Beef", Category: "MEAT",
			Price: deal.Price{Amount: fptr(3.99), Unit: "lb"}},
		{ID: "p3", ProductName: "Flank Steak", Category: "MEAT",
			Price: deal.Price{Amount: fptr(8.99), Unit: "lb"}},
	}

	got := a.Analyze(deals, 2, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(got))
	}
	for i := range got {
		if !got[i].IsPriority {
			t.Errorf("expected only priority deals, got %v", ids(got))
		}
	}
}

func TestAnalyze_BalancedAllocation(t *testing.T) {
	a := New("", nil)

	var deals []deal.Record
	for i := 0; i < 10; i++ {
		deals = append(deals, record(string(rune('a'+i)), "Beef Roast", "MEAT", 5.00, float64(10+i)))
		deals[len(deals)-1].SizeQuantity = deals[len(deals)-1].IDKey()
	}
	for i := 0; i < 4; i++ {
		deals = append(deals, record(string(rune('p'+i)), "Gala Apples", "PRODUCE", 4.00, float64(10+i)))
		deals[len(deals)-1].SizeQuantity = deals[len(deals)-1].IDKey()
	}
	deals = append(deals, record("z", "Pretzels", "SNACKS", 3.00, 10))

	// 6 slots over 10/4/1 availability allocates 4/2/0 proportionally.
	got := a.Analyze(deals, 6, nil)
	if len(got) != 6 {
		t.Fatalf("expected 6 deals, got %d", len(got))
	}
	counts := groupCounts(got)
	if counts[deal.GroupMeatSeafood] != 4 || counts[deal.GroupProduce] != 2 || counts[deal.GroupSnacksOther] != 0 {
		t.Errorf("expected 4/2/0 split, got %v", counts)
	}
}

func TestAnalyze_BalancedOverAllocationDropsWorst(t *testing.T) {
	a := New("", nil)
	deals := []deal.Record{
		record("m1", "Beef Roast", "MEAT", 5.00, 60),
		record("m2", "Pork Loin", "MEAT", 5.00, 50),
		record("m3", "Lamb Chops", "MEAT", 5.00, 20),
		record("p1", "Gala Apples", "PRODUCE", 5.00, 55),
		record("p2", "Navel Oranges", "PRODUCE", 5.00, 45),
		record("p3", "Roma Tomatoes", "PRODUCE", 5.00, 40),
	}

	// 5 slots over 3/3 rounds both buckets up to 3; the correction pass drops
	// the weakest allocated deal, which is the 20%-off meat.
	got := a.Analyze(deals, 5, nil)
	if len(got) != 5 {
		t.Fatalf("expected 5 deals, got %d", len(got))
	}
	counts := groupCounts(got)
	if counts[deal.GroupMeatSeafood] != 2 || counts[deal.GroupProduce] != 3 {
		t.Errorf("expected 2 meat and 3 produce, got %v", counts)
	}
	for i := range got {
		if got[i].IDKey() == "m3" {
			t.Errorf("expected weakest meat deal dropped, got %v", ids(got))
		}
	}
}

func TestAnalyze_BalanceDisabled(t *testing.T) {
	a := New("", nil)
	deals := []deal.Record{
		record("m1", "Beef Roast", "MEAT", 5.00, 60),
		record("m2", "Pork Loin", "MEAT", 5.00, 55),
		record("m3", "Lamb Chops", "MEAT", 5.00, 50),
		record("p1", "Gala Apples", "PRODUCE", 5.00, 10),
	}

	off := false
	got := a.Analyze(deals, 3, &off)
	if len(got) != 3 {
		t.Fatalf("expected 3 deals, got %d", len(got))
	}
	// Without balancing the three meat deals outrank the produce deal.
	counts := groupCounts(got)
	if counts[deal.GroupMeatSeafood] != 3 {
		t.Errorf("expected all 3 slots filled by meat, got %v", counts)
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	a := New("", nil)
	deals := []deal.Record{
		{ID: "mb", ProductName: "Yogurt Cups", Category: "DAIRY",
			Price: deal.Price{
				Amount:          fptr(10.00),
				IsMultibuy:      true,
				MultibuyDetails: map[string]any{"per_unit_cost": 2.50, "quantity_required": 4},
			}},
		record("b", "Gala Apples", "PRODUCE", 4.00, 20),
	}

	got := a.Analyze(deals, 2, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(got))
	}

	if *deals[0].Price.Amount != 10.00 {
		t.Errorf("expected caller amount untouched, got %v", *deals[0].Price.Amount)
	}
	if deals[0].QuantityRequired != nil {
		t.Errorf("expected caller record untouched, got quantity %v", *deals[0].QuantityRequired)
	}
	if deals[0].IDKey() != "mb" || deals[1].IDKey() != "b" {
		t.Errorf("expected input order preserved")
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := New("", nil)
	if got := a.Analyze(nil, 5, nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", ids(got))
	}
}

func TestAnalyzeWithExclusions(t *testing.T) {
	a := New("", nil)
	deals := []deal.Record{
		record("keep", "Gala Apples", "PRODUCE", 4.00, 20),
		{ID: "noprice", ProductName: "Mystery Item", Category: "GROCERY"},
		record("booze", "Craft IPA", "BEER & WINE", 9.99, 10),
		record("vitamins", "Daily Multivitamin", "HEALTH & BEAUTY", 12.00, 10),
	}

	got, excluded := a.AnalyzeWithExclusions(deals, 5, nil)
	if len(got) != 1 || got[0].IDKey() != "keep" {
		t.Fatalf("expected only the produce deal kept, got %v", ids(got))
	}
	if len(excluded) != 3 {
		t.Fatalf("expected 3 exclusions, got %d", len(excluded))
	}

	reasons := make(map[string]Reason, len(excluded))
	for _, ex := range excluded {
		reasons[ex.Deal.IDKey()] = ex.Reason
	}
	if reasons["noprice"] != ReasonMissingPriceAmount {
		t.Errorf("expected missing_price_amount, got %q", reasons["noprice"])
	}
	if reasons["booze"] != ReasonCategoryAlcohol {
		t.Errorf("expected category_alcohol, got %q", reasons["booze"])
	}
	if reasons["vitamins"] != ReasonSupplement {
		t.Errorf("expected supplement, got %q", reasons["vitamins"])
	}
}

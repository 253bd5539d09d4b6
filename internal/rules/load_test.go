package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	r := Default()

	if len(r.PriorityRules) != 3 {
		t.Fatalf("expected 3 priority rules, got %d", len(r.PriorityRules))
	}
	if r.PriorityRules[0].Name != "chicken_breast" || r.PriorityRules[0].BonusScore != 30 {
		t.Errorf("expected chicken_breast rule with bonus 30 first, got %s/%d",
			r.PriorityRules[0].Name, r.PriorityRules[0].BonusScore)
	}
	if w := r.CategoryWeights["MEAT"]; w != 25 {
		t.Errorf("expected MEAT weight 25, got %d", w)
	}
	if !r.Dedupe || !r.BalanceCategories {
		t.Errorf("expected dedupe and balancing enabled by default")
	}
}

func TestParse_OverridesOnlyPresentKeys(t *testing.T) {
	payload := []byte(`
store_brands: ["acme basics"]
category_weights:
  MEAT: 30
balance_categories: false
`)
	r, err := Parse(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.StoreBrands) != 1 || r.StoreBrands[0] != "acme basics" {
		t.Errorf("expected store brands replaced, got %v", r.StoreBrands)
	}
	if r.CategoryWeights["MEAT"] != 30 {
		t.Errorf("expected MEAT weight overridden to 30, got %d", r.CategoryWeights["MEAT"])
	}
	if r.BalanceCategories {
		t.Errorf("expected balancing disabled")
	}

	// Keys absent from the payload keep their defaults.
	if len(r.PriorityRules) != 3 {
		t.Errorf("expected default priority rules retained, got %d", len(r.PriorityRules))
	}
	if !r.Dedupe {
		t.Errorf("expected dedupe default retained")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty payload", payload: "   \n"},
		{name: "malformed yaml", payload: "store_brands: [unclosed"},
		{
			name: "priority rule without keywords",
			payload: `
priority_rules:
  - name: broken
    max_price_per_lb: 3.0
    categories: ["MEAT"]
`,
		},
		{
			name: "priority rule with zero price cap",
			payload: `
priority_rules:
  - name: broken
    keywords: ["chicken"]
    max_price_per_lb: 0
    categories: ["MEAT"]
`,
		},
		{
			name: "priority rule without categories",
			payload: `
priority_rules:
  - name: broken
    keywords: ["chicken"]
    max_price_per_lb: 3.0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.payload)); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestLoadFile_MissingFileReturnsDefaults(t *testing.T) {
	r, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.PriorityRules) != 3 {
		t.Errorf("expected defaults, got %d priority rules", len(r.PriorityRules))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("dedupe: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Dedupe {
		t.Errorf("expected dedupe disabled by override file")
	}
}

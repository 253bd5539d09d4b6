package rules

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML rules payload on top of the built-in defaults.
// Only the keys present in the payload are replaced; everything else keeps
// its default value, so an override file can be as small as one line.
func Parse(data []byte) (*Rules, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("rules: payload is empty")
	}
	r := Default()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("rules: decode: %w", err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFile reads a YAML rules override file. A missing file is not an error:
// the built-in defaults are returned so startup does not depend on the file
// existing.
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules: %s: %w", path, err)
	}
	return r, nil
}

func (r *Rules) validate() error {
	for i, pr := range r.PriorityRules {
		if len(pr.Keywords) == 0 {
			return fmt.Errorf("rules: priority rule %d (%s) has no keywords", i, pr.Name)
		}
		if pr.MaxPricePerLb <= 0 {
			return fmt.Errorf("rules: priority rule %d (%s) has non-positive max_price_per_lb", i, pr.Name)
		}
		if len(pr.Categories) == 0 {
			return fmt.Errorf("rules: priority rule %d (%s) has no categories", i, pr.Name)
		}
	}
	return nil
}

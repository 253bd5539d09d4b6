package app

import (
	"fmt"

	"github.com/blackwell-systems/dealrank/internal/config"
	"github.com/blackwell-systems/dealrank/internal/deal"
	"github.com/blackwell-systems/dealrank/internal/rules"
)

// loadSettings resolves app settings from config file and environment.
func loadSettings() (*config.Settings, error) {
	s, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

// loadRules resolves the analyzer rule set: the --rules flag wins, then the
// configured rules file, then the built-in defaults.
func loadRules(settings *config.Settings) (*rules.Rules, error) {
	path := rulesPath
	if path == "" {
		path = settings.RulesFile
	}
	if path == "" {
		return rules.Default(), nil
	}

	r, err := rules.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	return r, nil
}

// loadDeals reads the deals JSON file named by the flag or the settings.
func loadDeals(flagInput string, settings *config.Settings) ([]deal.Record, error) {
	path := flagInput
	if path == "" {
		path = settings.Input
	}
	if path == "" {
		return nil, fmt.Errorf("no input file: pass --input or set input in dealrank.yaml")
	}

	deals, err := deal.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}
	return deals, nil
}

// resolveInputPath returns the effective deals file path without reading it.
func resolveInputPath(flagInput string, settings *config.Settings) (string, error) {
	if flagInput != "" {
		return flagInput, nil
	}
	if settings.Input != "" {
		return settings.Input, nil
	}
	return "", fmt.Errorf("no input file: pass --input or set input in dealrank.yaml")
}

package app

import (
	"github.com/spf13/cobra"
)

var (
	rulesPath string

	// RootCmd is the root command for dealrank
	RootCmd = &cobra.Command{
		Use:   "dealrank",
		Short: "Rank weekly grocery deals across retailers",
		Long: `dealrank scores weekly grocery promotions with a seven-factor engagement
heuristic and selects a bounded, category-balanced top-N list per retailer.

Deals are read from a JSON file produced by a flyer extraction pipeline.
Store brands, alcohol, and supplements are filtered out with explicit reason
codes; staples like cheap chicken breast are auto-included as priority deals.

Examples:
  # Rank this week's deals
  dealrank analyze --input deals.json

  # Rank one retailer, without category balancing
  dealrank analyze -i deals.json -r SPROUTS --no-balance

  # See what was filtered out and why
  dealrank excluded -i deals.json

  # Compare top picks across retailers
  dealrank compare -i deals.json

  # Generate the weekly HTML email
  dealrank email -i deals.json --template weekly.html --out weekly-filled.html

  # Re-render the report whenever the deals file changes
  dealrank watch -i deals.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "analyzer rules YAML file (default: built-in rules)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(analyzeCmd)
	RootCmd.AddCommand(excludedCmd)
	RootCmd.AddCommand(compareCmd)
	RootCmd.AddCommand(emailCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

package app

import (
	"fmt"

	"github.com/blackwell-systems/dealrank/internal/output"
	"github.com/spf13/cobra"
)

var (
	compareInput string
	compareTopN  int

	compareCmd = &cobra.Command{
		Use:   "compare",
		Short: "Compare top deals across retailers",
		Long: `Analyze each retailer present in the deals file independently and print
its strongest deals, one section per retailer.`,
		Example: `  dealrank compare -i deals.json
  dealrank compare -i deals.json -n 5`,
		RunE: runCompare,
	}
)

func init() {
	compareCmd.Flags().StringVarP(&compareInput, "input", "i", "", "path to deals JSON file")
	compareCmd.Flags().IntVarP(&compareTopN, "top", "n", 3, "deals per retailer")
}

func runCompare(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	r, err := loadRules(settings)
	if err != nil {
		return err
	}

	deals, err := loadDeals(compareInput, settings)
	if err != nil {
		return err
	}

	retailers := output.Retailers(deals)
	fmt.Print(output.RenderComparison(deals, retailers, compareTopN, r))
	return nil
}

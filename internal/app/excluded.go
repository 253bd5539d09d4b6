package app

import (
	"fmt"

	"github.com/blackwell-systems/dealrank/internal/analyzer"
	"github.com/blackwell-systems/dealrank/internal/output"
	"github.com/spf13/cobra"
)

var (
	excludedInput    string
	excludedTopN     int
	excludedRetailer string
	excludedLimit    int

	excludedCmd = &cobra.Command{
		Use:   "excluded",
		Short: "Show deals dropped by the exclusion filter",
		Long: `Analyze a deals JSON file and list every deal the exclusion filter
dropped, with its reason code, followed by the surviving top-N report.

Reason codes, in evaluation order: missing_price_amount,
invalid_negative_price, excluded_category_alcohol, excluded_supplement,
excluded_store_brand, excluded_product_keyword, filtered_out_by_retailer.`,
		Example: `  dealrank excluded -i deals.json -r SPROUTS`,
		RunE:    runExcluded,
	}
)

func init() {
	excludedCmd.Flags().StringVarP(&excludedInput, "input", "i", "", "path to deals JSON file")
	excludedCmd.Flags().IntVarP(&excludedTopN, "top", "n", 0, "number of top deals to show (default from config, 6)")
	excludedCmd.Flags().StringVarP(&excludedRetailer, "retailer", "r", "", "retailer filter (e.g. AMAZON_FRESH)")
	excludedCmd.Flags().IntVar(&excludedLimit, "limit", 200, "max excluded entries to print (0 for all)")
}

func runExcluded(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	r, err := loadRules(settings)
	if err != nil {
		return err
	}

	deals, err := loadDeals(excludedInput, settings)
	if err != nil {
		return err
	}

	topN := excludedTopN
	if topN == 0 {
		topN = settings.TopN
	}
	retailer := excludedRetailer
	if retailer == "" {
		retailer = settings.Retailer
	}

	a := analyzer.New(retailer, r)
	top, excluded := a.AnalyzeWithExclusions(deals, topN, nil)

	fmt.Print(output.RenderTopDeals(a, top, settings.ShowDetails))
	fmt.Println()
	fmt.Print(output.RenderExcluded(excluded, excludedLimit))
	return nil
}

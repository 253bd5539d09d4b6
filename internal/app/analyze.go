package app

import (
	"fmt"

	"github.com/blackwell-systems/dealrank/internal/analyzer"
	"github.com/blackwell-systems/dealrank/internal/output"
	"github.com/spf13/cobra"
)

var (
	analyzeInput     string
	analyzeTopN      int
	analyzeRetailer  string
	analyzeNoDetails bool
	analyzeNoBalance bool

	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Rank deals and print the top-N report",
		Long: `Analyze a deals JSON file and print the ranked top-N report.

Deals are deduplicated, filtered (store brands, alcohol, supplements,
missing prices), scored with the seven-factor engagement heuristic, and
selected with category balancing across Meat/Seafood, Produce, and
Snacks/Other. Priority staples are auto-included when they qualify.`,
		Example: `  # Top 6 deals across all retailers
  dealrank analyze --input deals.json

  # Top 10 deals at HEB, compact output
  dealrank analyze -i deals.json -n 10 -r HEB --no-details`,
		RunE: runAnalyze,
	}
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "path to deals JSON file")
	analyzeCmd.Flags().IntVarP(&analyzeTopN, "top", "n", 0, "number of top deals to show (default from config, 6)")
	analyzeCmd.Flags().StringVarP(&analyzeRetailer, "retailer", "r", "", "retailer filter (e.g. AMAZON_FRESH)")
	analyzeCmd.Flags().BoolVar(&analyzeNoDetails, "no-details", false, "hide scoring details")
	analyzeCmd.Flags().BoolVar(&analyzeNoBalance, "no-balance", false, "disable category balancing")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	r, err := loadRules(settings)
	if err != nil {
		return err
	}

	deals, err := loadDeals(analyzeInput, settings)
	if err != nil {
		return err
	}

	topN := analyzeTopN
	if topN == 0 {
		topN = settings.TopN
	}
	retailer := analyzeRetailer
	if retailer == "" {
		retailer = settings.Retailer
	}
	showDetails := settings.ShowDetails && !analyzeNoDetails

	var balanceOverride *bool
	if analyzeNoBalance {
		f := false
		balanceOverride = &f
	} else if !settings.Balance {
		f := false
		balanceOverride = &f
	}

	a := analyzer.New(retailer, r)
	top := a.Analyze(deals, topN, balanceOverride)

	fmt.Print(output.RenderTopDeals(a, top, showDetails))
	return nil
}

package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/dealrank/internal/email"
	"github.com/spf13/cobra"
)

var (
	emailInput    string
	emailTemplate string
	emailOut      string
	emailTopN     int
	emailName     string
	emailAddress  string
	emailZip      string
	emailWeekOf   string

	emailCmd = &cobra.Command{
		Use:   "email",
		Short: "Generate the weekly deals HTML email",
		Long: `Fill the weekly email HTML template with analyzed deals: one section per
retailer with a 2-up deal-card grid, plus a cross-retailer staple price
comparison table and personalization fields.`,
		Example: `  dealrank email -i deals.json --template weekly.html --out weekly-filled.html
  dealrank email -i deals.json --template weekly.html --name Sam --zip 78704`,
		RunE: runEmail,
	}
)

func init() {
	emailCmd.Flags().StringVarP(&emailInput, "input", "i", "", "path to deals JSON file")
	emailCmd.Flags().StringVar(&emailTemplate, "template", "", "path to email HTML template")
	emailCmd.Flags().StringVarP(&emailOut, "out", "o", "", "output file (default: stdout)")
	emailCmd.Flags().IntVarP(&emailTopN, "top", "n", 6, "deals per retailer section")
	emailCmd.Flags().StringVar(&emailName, "name", "", "recipient display name")
	emailCmd.Flags().StringVar(&emailAddress, "email", "", "recipient email address")
	emailCmd.Flags().StringVar(&emailZip, "zip", "", "recipient ZIP code")
	emailCmd.Flags().StringVar(&emailWeekOf, "week", "", `week label (e.g. "Mar 03", default: today)`)
}

func runEmail(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	r, err := loadRules(settings)
	if err != nil {
		return err
	}

	deals, err := loadDeals(emailInput, settings)
	if err != nil {
		return err
	}

	templatePath := emailTemplate
	if templatePath == "" {
		templatePath = settings.Template
	}
	if templatePath == "" {
		return fmt.Errorf("no template: pass --template or set template in dealrank.yaml")
	}

	templateHTML, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	html := email.Build(deals, string(templateHTML), r, email.Options{
		TopNPerRetailer: emailTopN,
		DisplayName:     emailName,
		Email:           emailAddress,
		ZipCode:         emailZip,
		WeekOf:          emailWeekOf,
	})

	if emailOut == "" {
		fmt.Print(html)
		return nil
	}

	if err := os.WriteFile(emailOut, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", emailOut, err)
	}
	fmt.Printf("Wrote %s\n", emailOut)
	return nil
}
